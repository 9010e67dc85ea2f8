package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
)

func TestEditorCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("appends one record with the next id", func(t *testing.T) {
		uc, repo, notifier := newUseCases(t)
		seedControlCategories(t, repo)

		created, err := editorOf(t, uc, usecase.ControlCategories).Create(ctx, map[string]string{"name": "Corrective"})
		gt.NoError(t, err).Required()

		category := created.(*model.ControlCategory)
		gt.Value(t, category.ID).Equal(types.RecordID("4"))
		gt.Value(t, category.Name).Equal("Corrective")
		gt.Value(t, repo.ControlCategories().Len(ctx)).Equal(4)
		gt.Value(t, notifier.last().Kind).Equal(types.NotificationSuccess)
		gt.Value(t, notifier.last().Message).Equal("Control category created successfully")
	})

	t.Run("empty required name appends nothing", func(t *testing.T) {
		uc, repo, notifier := newUseCases(t)
		seedControlCategories(t, repo)

		_, err := editorOf(t, uc, usecase.ControlCategories).Create(ctx, map[string]string{"name": ""})
		gt.Error(t, err).Is(usecase.ErrValidation)

		var verr *usecase.ValidationError
		gt.Bool(t, errors.As(err, &verr)).True()
		gt.Value(t, verr.Fields["name"]).Equal("Category name is required")
		gt.Value(t, len(verr.Fields)).Equal(1)

		gt.Value(t, repo.ControlCategories().Len(ctx)).Equal(3)
		gt.Array(t, notifier.messages()).Length(0)
	})

	t.Run("range rules accept boundaries", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		editor := editorOf(t, uc, usecase.ControlRatings)

		for _, rating := range []string{"1", "5"} {
			_, err := editor.Create(ctx, map[string]string{"name": "Rating " + rating, "rating": rating, "color": "#22c55e"})
			gt.NoError(t, err)
		}
		for _, rating := range []string{"0", "6", "abc"} {
			_, err := editor.Create(ctx, map[string]string{"name": "Rating " + rating, "rating": rating, "color": "#22c55e"})
			var verr *usecase.ValidationError
			gt.Bool(t, errors.As(err, &verr)).True()
			gt.Value(t, verr.Fields["rating"]).Equal("Rating must be between 1 and 5")
		}
		gt.Value(t, editor.Len(ctx)).Equal(2)
	})

	t.Run("collects every failing field", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		_, err := editorOf(t, uc, usecase.Users).Create(ctx, map[string]string{
			"name":     "J",
			"email":    "not-an-email",
			"jobTitle": "Developer",
			"role":     "Root",
		})
		var verr *usecase.ValidationError
		gt.Bool(t, errors.As(err, &verr)).True()
		gt.Value(t, verr.Fields["name"]).Equal("Name must be at least 2 characters")
		gt.Value(t, verr.Fields["email"]).Equal("Invalid email address")
		gt.Value(t, verr.Fields["role"]).Equal("Please select a role")
		gt.Value(t, verr.Fields["jobTitle"]).Equal("")
		gt.Value(t, verr.Fields["status"]).Equal("")
	})

	t.Run("roles default to pending", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		created, err := editorOf(t, uc, usecase.Roles).Create(ctx, map[string]string{
			"moduleName":   "Audit Module",
			"workflow":     "audit_review",
			"templateType": "audit",
			"accessType":   "full",
			"description":  "Full access to the audit module",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.(*model.Role).Status).Equal(types.ApprovalStatusPending)
	})

	t.Run("workflow needs approvers and a valid date", func(t *testing.T) {
		uc, _, _ := newUseCases(t)
		editor := editorOf(t, uc, usecase.Workflows)
		values := map[string]string{
			"name":        "Tax Compliance Audit",
			"description": "Review and verify tax compliance documentation",
			"type":        "audit",
			"dueDate":     "2024-03-25",
			"priority":    "Medium",
			"approvers":   " , ",
		}

		_, err := editor.Create(ctx, values)
		var verr *usecase.ValidationError
		gt.Bool(t, errors.As(err, &verr)).True()
		gt.Value(t, verr.Fields["approvers"]).Equal("At least one approver is required")

		values["approvers"] = "1,2"
		values["dueDate"] = "25/03/2024"
		_, err = editor.Create(ctx, values)
		gt.Bool(t, errors.As(err, &verr)).True()
		gt.Value(t, verr.Fields["dueDate"]).Equal("Due date must be YYYY-MM-DD")

		values["dueDate"] = "2024-03-25"
		created, err := editor.Create(ctx, values)
		gt.NoError(t, err).Required()
		gt.Array(t, []string(created.(*model.WorkflowItem).Approvers)).Equal([]string{"1", "2"})
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		uc, _, _ := newUseCases(t)

		created, err := editorOf(t, uc, usecase.ControlFrequencies).Create(ctx, map[string]string{
			"name": "Monthly",
			"id":   "99",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.(*model.ControlFrequency).ID).Equal(types.RecordID("1"))
	})
}

func TestEditorUpdate(t *testing.T) {
	ctx := context.Background()

	newRatings := func(t *testing.T) (*usecase.UseCases, *recordingNotifier) {
		uc, repo, notifier := newUseCases(t)
		for _, r := range []*model.ControlRating{
			{Name: "Robust", Rating: 1, Color: "#22c55e"},
			{Name: "Effective", Rating: 2, Color: "#ff0000"},
		} {
			_, err := repo.ControlRatings().Create(ctx, r)
			gt.NoError(t, err).Required()
		}
		return uc, notifier
	}

	t.Run("changes only the submitted field", func(t *testing.T) {
		uc, notifier := newRatings(t)
		editor := editorOf(t, uc, usecase.ControlRatings)

		updated, err := editor.Update(ctx, "2", map[string]string{"color": "#00ff00"})
		gt.NoError(t, err).Required()

		rating := updated.(*model.ControlRating)
		gt.Value(t, rating.ID).Equal(types.RecordID("2"))
		gt.Value(t, rating.Name).Equal("Effective")
		gt.Value(t, rating.Rating).Equal(2)
		gt.Value(t, rating.Color).Equal("#00ff00")
		gt.Value(t, notifier.last().Message).Equal("Control rating updated successfully")

		other, err := editor.Get(ctx, "1")
		gt.NoError(t, err).Required()
		gt.Value(t, other.(*model.ControlRating).Color).Equal("#22c55e")
	})

	t.Run("invalid value leaves record unchanged", func(t *testing.T) {
		uc, _ := newRatings(t)
		editor := editorOf(t, uc, usecase.ControlRatings)

		_, err := editor.Update(ctx, "2", map[string]string{"rating": "9"})
		gt.Error(t, err).Is(usecase.ErrValidation)

		got, err := editor.Get(ctx, "2")
		gt.NoError(t, err).Required()
		gt.Value(t, got.(*model.ControlRating).Rating).Equal(2)
	})

	t.Run("missing record fails with not found", func(t *testing.T) {
		uc, _ := newRatings(t)
		_, err := editorOf(t, uc, usecase.ControlRatings).Update(ctx, "42", map[string]string{"color": "#000000"})
		gt.Error(t, err).Is(memory.ErrNotFound)
	})
}

func TestEditorScoreBands(t *testing.T) {
	ctx := context.Background()
	uc, _, notifier := newUseCases(t)
	editor := editorOf(t, uc, usecase.ScoreBands)

	for _, values := range []map[string]string{
		{"name": "Low", "scoreFrom": "1", "scoreTo": "5", "color": "#22c55e"},
		{"name": "Medium", "scoreFrom": "6", "scoreTo": "10", "color": "#eab308"},
	} {
		_, err := editor.Create(ctx, values)
		gt.NoError(t, err).Required()
	}

	t.Run("overlap is an alert, not a field error", func(t *testing.T) {
		_, err := editor.Create(ctx, map[string]string{"name": "Bad", "scoreFrom": "5", "scoreTo": "8", "color": "#000000"})
		gt.Error(t, err).Is(model.ErrScoreBandOverlap)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).False()
		gt.Value(t, notifier.last().Kind).Equal(types.NotificationError)
		gt.Value(t, notifier.last().Message).Equal("Score range overlaps with existing ranges")
		gt.Value(t, editor.Len(ctx)).Equal(2)
	})

	t.Run("out of range band is an alert", func(t *testing.T) {
		_, err := editor.Create(ctx, map[string]string{"name": "Bad", "scoreFrom": "20", "scoreTo": "26", "color": "#000000"})
		gt.Error(t, err).Is(model.ErrScoreBandRange)
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).False()
		gt.Value(t, model.Alert(err)).Equal("Scores must be between 1 and 25")
		gt.Value(t, notifier.last().Message).Equal("Scores must be between 1 and 25")
		gt.Value(t, editor.Len(ctx)).Equal(2)
	})

	t.Run("inverted band is an alert", func(t *testing.T) {
		_, err := editor.Create(ctx, map[string]string{"name": "Bad", "scoreFrom": "15", "scoreTo": "12", "color": "#000000"})
		gt.Error(t, err).Is(model.ErrScoreBandOrder)
		gt.Value(t, editor.Len(ctx)).Equal(2)
	})

	t.Run("non-integer score is a field error", func(t *testing.T) {
		_, err := editor.Create(ctx, map[string]string{"name": "Bad", "scoreFrom": "1.5", "scoreTo": "3", "color": "#000000"})
		var verr *usecase.ValidationError
		gt.Bool(t, errors.As(err, &verr)).True()
		gt.Value(t, verr.Fields["scoreFrom"]).Equal("Score must be a whole number")
	})

	t.Run("disjoint band is accepted and listed first", func(t *testing.T) {
		_, err := editor.Create(ctx, map[string]string{"name": "High", "scoreFrom": "11", "scoreTo": "15", "color": "#ef4444"})
		gt.NoError(t, err).Required()

		list, err := editor.List(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		gt.Value(t, list[0].(*model.ScoreBand).Name).Equal("High")
	})
}

func TestEditorList(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCases(t)
	for _, u := range []*model.User{
		{Name: "John Anderson", Email: "j.anderson@company.com", JobTitle: "Senior Manager"},
		{Name: "Sarah Wilson", Email: "s.wilson@company.com", JobTitle: "Project Manager"},
		{Name: "Michael Chen", Email: "m.chen@company.com", JobTitle: "Developer"},
	} {
		_, err := repo.Users().Create(ctx, u)
		gt.NoError(t, err).Required()
	}
	editor := editorOf(t, uc, usecase.Users)

	all, err := editor.List(ctx, "  ")
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(3)

	managers, err := editor.List(ctx, "manager")
	gt.NoError(t, err).Required()
	gt.Array(t, managers).Length(2)

	none, err := editor.List(ctx, "auditor")
	gt.NoError(t, err).Required()
	gt.Array(t, none).Length(0)
}

func TestEditorExportCSV(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCases(t)
	_, err := repo.Workflows().Create(ctx, &model.WorkflowItem{
		Name:      "Annual Financial Audit Review",
		Priority:  types.PriorityHigh,
		Approvers: model.StringList{"1", "2"},
	})
	gt.NoError(t, err).Required()

	var buf bytes.Buffer
	gt.NoError(t, editorOf(t, uc, usecase.Workflows).ExportCSV(ctx, &buf)).Required()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	gt.Array(t, lines).Length(2)
	gt.String(t, lines[0]).Contains("id,created_at,updated_at,name")
	gt.String(t, lines[0]).Contains("approvers")
	gt.String(t, lines[1]).Contains("Annual Financial Audit Review")
	gt.String(t, lines[1]).Contains(`"1,2"`)
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCases(t)
	seedControlCategories(t, repo)

	names := uc.Collections.Names()
	gt.Array(t, names).Length(11)
	gt.Array(t, names).Equal(usecase.CollectionNames())

	infos := uc.Collections.Schemas(ctx)
	gt.Value(t, infos[0].Count).Equal(3)
	gt.Array(t, infos[0].Fields).Equal([]string{"name"})

	_, err := uc.Collections.Editor("unknown")
	gt.Error(t, err).Is(usecase.ErrUnknownCollection)
}
