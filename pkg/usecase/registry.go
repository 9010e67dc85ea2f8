package usecase

import (
	"context"
	"io"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

// CollectionEditor is the type-erased surface of an Editor, used where the collection is
// chosen at runtime by name.
type CollectionEditor interface {
	Schema() Schema
	List(ctx context.Context, query string) ([]any, error)
	Get(ctx context.Context, id types.RecordID) (any, error)
	Create(ctx context.Context, values map[string]string) (any, error)
	Update(ctx context.Context, id types.RecordID, values map[string]string) (any, error)
	Delete(ctx context.Context, id types.RecordID) error
	Title(ctx context.Context, id types.RecordID) (string, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Len(ctx context.Context) int
}

type erased[T any, P Entry[T]] struct {
	*Editor[T, P]
}

func (e erased[T, P]) List(ctx context.Context, query string) ([]any, error) {
	records, err := e.Editor.List(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]any, len(records))
	for i, r := range records {
		items[i] = r
	}
	return items, nil
}

func (e erased[T, P]) Get(ctx context.Context, id types.RecordID) (any, error) {
	record, err := e.Editor.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (e erased[T, P]) Create(ctx context.Context, values map[string]string) (any, error) {
	record, err := e.Editor.Create(ctx, values)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (e erased[T, P]) Update(ctx context.Context, id types.RecordID, values map[string]string) (any, error) {
	record, err := e.Editor.Update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Registry resolves collection editors by name
type Registry struct {
	order   []types.CollectionName
	editors map[types.CollectionName]CollectionEditor
}

func register[T any, P Entry[T]](r *Registry, editor *Editor[T, P]) {
	name := editor.Schema().Name
	r.order = append(r.order, name)
	r.editors[name] = erased[T, P]{editor}
}

// NewRegistry builds an editor for every collection of repo
func NewRegistry(repo interfaces.Repository, notifier interfaces.Notifier, m *metrics.Metrics) *Registry {
	r := &Registry{editors: make(map[types.CollectionName]CollectionEditor)}

	register(r, NewEditor[model.ControlCategory, *model.ControlCategory](controlCategorySchema, repo.ControlCategories(), notifier, m))
	register(r, NewEditor[model.ControlFrequency, *model.ControlFrequency](controlFrequencySchema, repo.ControlFrequencies(), notifier, m))
	register(r, NewEditor[model.ControlRating, *model.ControlRating](controlRatingSchema, repo.ControlRatings(), notifier, m))
	register(r, NewEditor[model.ObservationRating, *model.ObservationRating](observationRatingSchema, repo.ObservationRatings(), notifier, m))
	register(r, NewEditor[model.InherentRiskLevel, *model.InherentRiskLevel](inherentRiskLevelSchema, repo.InherentRiskLevels(), notifier, m))
	register(r, NewEditor[model.ScoreBand, *model.ScoreBand](scoreBandSchema, repo.ScoreBands(), notifier, m))
	register(r, NewEditor[model.RiskCategory, *model.RiskCategory](riskCategorySchema, repo.RiskCategories(), notifier, m))
	register(r, NewEditor[model.Entity, *model.Entity](entitySchema, repo.Entities(), notifier, m))
	register(r, NewEditor[model.User, *model.User](userSchema, repo.Users(), notifier, m))
	register(r, NewEditor[model.Role, *model.Role](roleSchema, repo.Roles(), notifier, m))
	register(r, NewEditor[model.WorkflowItem, *model.WorkflowItem](workflowSchema, repo.Workflows(), notifier, m))

	return r
}

// Editor returns the editor of the named collection
func (r *Registry) Editor(name types.CollectionName) (CollectionEditor, error) {
	editor, ok := r.editors[name]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownCollection, "collection is not registered", goerr.V(CollectionKey, name))
	}
	return editor, nil
}

// Names returns the registered collection names in registration order
func (r *Registry) Names() []types.CollectionName {
	return slices.Clone(r.order)
}

// Schemas describes every collection with its current record count
func (r *Registry) Schemas(ctx context.Context) []SchemaInfo {
	infos := make([]SchemaInfo, 0, len(r.order))
	for _, name := range r.order {
		editor := r.editors[name]
		infos = append(infos, editor.Schema().info(editor.Len(ctx)))
	}
	return infos
}
