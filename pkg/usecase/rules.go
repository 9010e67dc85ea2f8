package usecase

import (
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/form"
)

// Collection names
const (
	ControlCategories  types.CollectionName = "control-categories"
	ControlFrequencies types.CollectionName = "control-frequencies"
	ControlRatings     types.CollectionName = "control-ratings"
	ObservationRatings types.CollectionName = "observation-ratings"
	InherentRiskLevels types.CollectionName = "inherent-risk-levels"
	ScoreBands         types.CollectionName = "score-bands"
	RiskCategories     types.CollectionName = "risk-categories"
	Entities           types.CollectionName = "entities"
	Users              types.CollectionName = "users"
	Roles              types.CollectionName = "roles"
	Workflows          types.CollectionName = "workflows"
)

// CollectionNames returns every collection in registration order
func CollectionNames() []types.CollectionName {
	return []types.CollectionName{
		ControlCategories,
		ControlFrequencies,
		ControlRatings,
		ObservationRatings,
		InherentRiskLevels,
		ScoreBands,
		RiskCategories,
		Entities,
		Users,
		Roles,
		Workflows,
	}
}

const dateLayout = "2006-01-02"

func activeStatuses() []string {
	return []string{types.ActiveStatusActive.String(), types.ActiveStatusInactive.String()}
}

func approvalStatuses() []string {
	var values []string
	for _, s := range types.AllApprovalStatuses() {
		values = append(values, s.String())
	}
	return values
}

func levelTypes() []string {
	var values []string
	for _, t := range types.AllLevelTypes() {
		values = append(values, t.String())
	}
	return values
}

func priorities() []string {
	var values []string
	for _, p := range types.AllPriorities() {
		values = append(values, p.String())
	}
	return values
}

func scoreRule(requiredMsg, rangeMsg string) form.Rule {
	return form.IntRange(1, 5, requiredMsg, rangeMsg)
}

// bandScoreRule only checks the value is a whole number. Range and order are checked
// against the whole band by model.CheckScoreBand and reported as an alert.
func bandScoreRule(requiredMsg string) form.Rule {
	return form.Integer(requiredMsg, "Score must be a whole number")
}

var controlCategorySchema = Schema{
	Name:       ControlCategories,
	Label:      "Control category",
	Fields:     []string{"name"},
	TitleField: "name",
	Rules: form.Rules{
		"name": form.Required("Category name is required"),
	},
}

var controlFrequencySchema = Schema{
	Name:       ControlFrequencies,
	Label:      "Control frequency",
	Fields:     []string{"name"},
	TitleField: "name",
	Rules: form.Rules{
		"name": form.Required("Frequency name is required"),
	},
}

var controlRatingSchema = Schema{
	Name:       ControlRatings,
	Label:      "Control rating",
	Fields:     []string{"name", "rating", "color"},
	TitleField: "name",
	Rules: form.Rules{
		"name":   form.Required("Rating name is required"),
		"rating": scoreRule("Rating is required", "Rating must be between 1 and 5"),
		"color":  form.Chain(form.Required("Color is required"), form.HexColor("Color must be a hex value such as #22c55e")),
	},
}

var observationRatingSchema = Schema{
	Name:       ObservationRatings,
	Label:      "Observation rating",
	Fields:     []string{"name", "description", "score", "color"},
	TitleField: "name",
	Rules: form.Rules{
		"name":        form.Required("Rating name is required"),
		"description": form.Required("Description is required"),
		"score":       scoreRule("Score is required", "Score must be between 1 and 5"),
		"color":       form.Chain(form.Required("Color is required"), form.HexColor("Color must be a hex value such as #22c55e")),
	},
}

var inherentRiskLevelSchema = Schema{
	Name:       InherentRiskLevels,
	Label:      "Inherent risk level",
	Fields:     []string{"type", "name", "color", "score"},
	TitleField: "name",
	Defaults:   map[string]string{"type": types.LevelTypeImpact.String()},
	Rules: form.Rules{
		"type":  form.OneOf(levelTypes(), "Type must be Impact or Likelihood"),
		"name":  form.Required("Name is required"),
		"color": form.Chain(form.Required("Color is required"), form.HexColor("Color must be a hex value such as #22c55e")),
		"score": scoreRule("Score is required", "Score must be between 1 and 5"),
	},
}

var scoreBandSchema = Schema{
	Name:       ScoreBands,
	Label:      "Inherent score",
	Fields:     []string{"name", "scoreFrom", "scoreTo", "color"},
	TitleField: "name",
	Rules: form.Rules{
		"name":      form.Required("Name is required"),
		"scoreFrom": bandScoreRule("Start score is required"),
		"scoreTo":   bandScoreRule("End score is required"),
		"color":     form.Chain(form.Required("Color is required"), form.HexColor("Color must be a hex value such as #22c55e")),
	},
}

var riskCategorySchema = Schema{
	Name:        RiskCategories,
	Label:       "Risk category",
	Fields:      []string{"category", "description", "image"},
	TitleField:  "category",
	ImageFields: []string{"image"},
	Rules: form.Rules{
		"category": form.Required("Category is required"),
	},
}

var entitySchema = Schema{
	Name:        Entities,
	Label:       "Entity",
	Fields:      []string{"department", "subdepartment", "process", "owner", "status", "description", "image"},
	TitleField:  "process",
	ImageFields: []string{"image"},
	Defaults:    map[string]string{"status": types.ActiveStatusActive.String()},
	Rules: form.Rules{
		"department":    form.MinLength(2, "Department must be at least 2 characters"),
		"subdepartment": form.MinLength(2, "Subdepartment must be at least 2 characters"),
		"process":       form.MinLength(2, "Process must be at least 2 characters"),
		"owner":         form.MinLength(2, "Owner name must be at least 2 characters"),
		"status":        form.OneOf(activeStatuses(), "Status must be active or inactive"),
		"description":   form.MinLength(10, "Description must be at least 10 characters"),
	},
}

var userSchema = Schema{
	Name:        Users,
	Label:       "User",
	Fields:      []string{"name", "email", "jobTitle", "role", "status", "avatar"},
	TitleField:  "name",
	ImageFields: []string{"avatar"},
	Defaults:    map[string]string{"status": types.ActiveStatusActive.String()},
	Rules: form.Rules{
		"name":     form.MinLength(2, "Name must be at least 2 characters"),
		"email":    form.Email("Invalid email address"),
		"jobTitle": form.MinLength(2, "Job title must be at least 2 characters"),
		"role":     form.OneOf(types.Values(types.UserRoles), "Please select a role"),
		"status":   form.OneOf(activeStatuses(), "Status must be active or inactive"),
	},
}

var roleSchema = Schema{
	Name:        Roles,
	Label:       "Role",
	Fields:      []string{"moduleName", "workflow", "templateType", "accessType", "description", "status", "image"},
	TitleField:  "moduleName",
	ImageFields: []string{"image"},
	Defaults:    map[string]string{"status": types.ApprovalStatusPending.String()},
	Rules: form.Rules{
		"moduleName":   form.MinLength(3, "Role name must be at least 3 characters"),
		"workflow":     form.OneOf(types.Values(types.RoleWorkflows), "Please select a workflow"),
		"templateType": form.OneOf(types.Values(types.TemplateTypes), "Please select a template type"),
		"accessType":   form.OneOf(types.Values(types.AccessTypes), "Please select an access type"),
		"description":  form.MinLength(10, "Description must be at least 10 characters"),
		"status":       form.OneOf(approvalStatuses(), "Status must be Delivered, Pending or Rejected"),
	},
}

var workflowSchema = Schema{
	Name:       Workflows,
	Label:      "Workflow",
	Fields:     []string{"name", "description", "type", "dueDate", "priority", "approvers", "assignUser", "userRole", "status"},
	TitleField: "name",
	Defaults: map[string]string{
		"priority": types.PriorityMedium.String(),
		"status":   types.ApprovalStatusPending.String(),
	},
	Rules: form.Rules{
		"name":        form.MinLength(3, "Workflow name must be at least 3 characters"),
		"description": form.MinLength(10, "Description must be at least 10 characters"),
		"type":        form.OneOf(types.Values(types.WorkflowTypes), "Please select a workflow type"),
		"dueDate":     form.Chain(form.Required("Due date is required"), form.Date(dateLayout, "Due date must be YYYY-MM-DD")),
		"priority":    form.OneOf(priorities(), "Priority must be High, Medium or Low"),
		"approvers":   form.NonEmptyList("At least one approver is required"),
		"status":      form.OneOf(approvalStatuses(), "Status must be Delivered, Pending or Rejected"),
	},
}
