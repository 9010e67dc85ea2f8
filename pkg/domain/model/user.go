package model

import "github.com/secmon-lab/kottos/pkg/domain/types"

// User is a dashboard account. No authentication is attached to it.
type User struct {
	Header
	Name     string             `json:"name" csv:"name"`
	Email    string             `json:"email" csv:"email"`
	JobTitle string             `json:"jobTitle" csv:"job_title"`
	Role     string             `json:"role" csv:"role"`
	Status   types.ActiveStatus `json:"status" csv:"status"`
	Avatar   string             `json:"avatar" csv:"avatar"`
}

func (u *User) Bind(values map[string]string) error {
	bindString(values, "name", &u.Name)
	bindString(values, "email", &u.Email)
	bindString(values, "jobTitle", &u.JobTitle)
	bindString(values, "role", &u.Role)
	bindString(values, "status", &u.Status)
	bindString(values, "avatar", &u.Avatar)
	return nil
}

func (u *User) Draft() map[string]string {
	return map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"jobTitle": u.JobTitle,
		"role":     u.Role,
		"status":   u.Status.String(),
		"avatar":   u.Avatar,
	}
}

func (u *User) Matches(q string) bool {
	return containsFold(q, u.Name, u.Email, u.JobTitle)
}
