package model

import "github.com/secmon-lab/kottos/pkg/domain/types"

// Role binds a module to an approval workflow and access template
type Role struct {
	Header
	ModuleName   string               `json:"moduleName" csv:"module_name"`
	Workflow     string               `json:"workflow" csv:"workflow"`
	TemplateType string               `json:"templateType" csv:"template_type"`
	AccessType   string               `json:"accessType" csv:"access_type"`
	Description  string               `json:"description" csv:"description"`
	Status       types.ApprovalStatus `json:"status" csv:"status"`
	Image        string               `json:"image" csv:"image"`
}

func (r *Role) Bind(values map[string]string) error {
	bindString(values, "moduleName", &r.ModuleName)
	bindString(values, "workflow", &r.Workflow)
	bindString(values, "templateType", &r.TemplateType)
	bindString(values, "accessType", &r.AccessType)
	bindString(values, "description", &r.Description)
	bindString(values, "status", &r.Status)
	bindString(values, "image", &r.Image)
	return nil
}

func (r *Role) Draft() map[string]string {
	return map[string]string{
		"moduleName":   r.ModuleName,
		"workflow":     r.Workflow,
		"templateType": r.TemplateType,
		"accessType":   r.AccessType,
		"description":  r.Description,
		"status":       r.Status.String(),
		"image":        r.Image,
	}
}

func (r *Role) Matches(q string) bool {
	return containsFold(q, r.ModuleName, r.Workflow, r.Description)
}
