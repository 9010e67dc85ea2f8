package model

import "github.com/secmon-lab/kottos/pkg/domain/types"

// Entity is an auditable unit of the organization down to the process level
type Entity struct {
	Header
	Department    string             `json:"department" csv:"department"`
	Subdepartment string             `json:"subdepartment" csv:"subdepartment"`
	Process       string             `json:"process" csv:"process"`
	Owner         string             `json:"owner" csv:"owner"`
	Status        types.ActiveStatus `json:"status" csv:"status"`
	Description   string             `json:"description" csv:"description"`
	Image         string             `json:"image" csv:"image"`
}

func (e *Entity) Bind(values map[string]string) error {
	bindString(values, "department", &e.Department)
	bindString(values, "subdepartment", &e.Subdepartment)
	bindString(values, "process", &e.Process)
	bindString(values, "owner", &e.Owner)
	bindString(values, "status", &e.Status)
	bindString(values, "description", &e.Description)
	bindString(values, "image", &e.Image)
	return nil
}

func (e *Entity) Draft() map[string]string {
	return map[string]string{
		"department":    e.Department,
		"subdepartment": e.Subdepartment,
		"process":       e.Process,
		"owner":         e.Owner,
		"status":        e.Status.String(),
		"description":   e.Description,
		"image":         e.Image,
	}
}

func (e *Entity) Matches(q string) bool {
	return containsFold(q, e.Department, e.Subdepartment, e.Process, e.Owner)
}
