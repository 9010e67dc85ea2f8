package types

// Option sets offered by the selection fields of users, roles and workflows.
// The values are what clients submit; labels are display only.

// Option is one selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Values returns the submit values of opts
func Values(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

var (
	UserRoles = []Option{
		{Value: "Admin", Label: "Administrator"},
		{Value: "Manager", Label: "Manager"},
		{Value: "User", Label: "Regular User"},
	}

	TemplateTypes = []Option{
		{Value: "audit", Label: "Audit Template"},
		{Value: "risk", Label: "Risk Assessment"},
		{Value: "compliance", Label: "Compliance Review"},
		{Value: "investigation", Label: "Investigation"},
	}

	AccessTypes = []Option{
		{Value: "full", Label: "Full Access"},
		{Value: "read", Label: "Read Only"},
		{Value: "write", Label: "Write Only"},
		{Value: "custom", Label: "Custom Access"},
	}

	RoleWorkflows = []Option{
		{Value: "audit_review", Label: "Audit Review Process"},
		{Value: "risk_assessment", Label: "Risk Assessment Flow"},
		{Value: "compliance_review", Label: "Compliance Review"},
		{Value: "investigation", Label: "Investigation Process"},
		{Value: "approval", Label: "Approval Workflow"},
	}

	WorkflowTypes = []Option{
		{Value: "audit", Label: "Audit Workflow"},
		{Value: "risk", Label: "Risk Assessment"},
		{Value: "compliance", Label: "Compliance Review"},
		{Value: "investigation", Label: "Investigation"},
	}
)
