package model

import (
	"slices"
	"strings"

	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// WorkflowItem is one approval task assigned to a user
type WorkflowItem struct {
	Header
	Name        string               `json:"name" csv:"name"`
	Description string               `json:"description" csv:"description"`
	Type        string               `json:"type" csv:"type"`
	DueDate     string               `json:"dueDate" csv:"due_date"`
	Priority    types.Priority       `json:"priority" csv:"priority"`
	Approvers   StringList           `json:"approvers" csv:"approvers"`
	AssignUser  string               `json:"assignUser" csv:"assign_user"`
	UserRole    string               `json:"userRole" csv:"user_role"`
	Status      types.ApprovalStatus `json:"status" csv:"status"`
}

func (w *WorkflowItem) Bind(values map[string]string) error {
	bindString(values, "name", &w.Name)
	bindString(values, "description", &w.Description)
	bindString(values, "type", &w.Type)
	bindString(values, "dueDate", &w.DueDate)
	bindString(values, "priority", &w.Priority)
	bindString(values, "assignUser", &w.AssignUser)
	bindString(values, "userRole", &w.UserRole)
	bindString(values, "status", &w.Status)
	if v, ok := values["approvers"]; ok {
		w.Approvers = splitList(v)
	}
	return nil
}

func (w *WorkflowItem) Draft() map[string]string {
	return map[string]string{
		"name":        w.Name,
		"description": w.Description,
		"type":        w.Type,
		"dueDate":     w.DueDate,
		"priority":    w.Priority.String(),
		"approvers":   strings.Join(w.Approvers, ","),
		"assignUser":  w.AssignUser,
		"userRole":    w.UserRole,
		"status":      w.Status.String(),
	}
}

func (w *WorkflowItem) Matches(q string) bool {
	return containsFold(q, w.Name, w.Description, w.AssignUser)
}

// Clone copies the approver list so stored items never share it with callers
func (w *WorkflowItem) Clone() *WorkflowItem {
	c := *w
	c.Approvers = slices.Clone(w.Approvers)
	return &c
}

func splitList(s string) StringList {
	var items StringList
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
