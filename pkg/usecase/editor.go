package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/form"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

// Entry is satisfied by a pointer to any managed record type
type Entry[T any] interface {
	model.Record[T]
	Bind(values map[string]string) error
	Draft() map[string]string
	Matches(query string) bool
}

// Editor runs form submissions for one collection: it seeds a form controller, validates
// the draft against the collection rules and applies it to the store.
type Editor[T any, P Entry[T]] struct {
	schema   Schema
	coll     interfaces.Collection[T]
	notifier interfaces.Notifier
	metrics  *metrics.Metrics
}

// NewEditor creates an editor for coll. notifier and m may be nil.
func NewEditor[T any, P Entry[T]](schema Schema, coll interfaces.Collection[T], notifier interfaces.Notifier, m *metrics.Metrics) *Editor[T, P] {
	return &Editor[T, P]{
		schema:   schema,
		coll:     coll,
		notifier: notifier,
		metrics:  m,
	}
}

// Schema returns the collection schema
func (e *Editor[T, P]) Schema() Schema {
	return e.schema
}

func (e *Editor[T, P]) notify(ctx context.Context, n model.Notification) {
	if e.notifier != nil {
		e.notifier.Notify(ctx, n)
	}
}

// submit applies values to a controller seeded with defaults and validates the draft.
// Fields outside the schema are ignored.
func (e *Editor[T, P]) submit(defaults, values map[string]string) (*form.Controller, map[string]string, error) {
	ctrl := form.New(defaults)
	applied := make(map[string]string, len(values))
	for name, value := range values {
		if !e.schema.hasField(name) {
			continue
		}
		ctrl.SetField(name, value)
		applied[name] = value
	}

	if !ctrl.Validate(e.schema.Rules) {
		return nil, nil, goerr.Wrap(&ValidationError{Fields: ctrl.Errors()}, "submission rejected",
			goerr.V(CollectionKey, e.schema.Name))
	}
	return ctrl, applied, nil
}

// finish records the outcome of a mutation. Score band conflicts are surfaced to the
// user as an error notification; validation failures stay inline.
func (e *Editor[T, P]) finish(ctx context.Context, op, success string, err error) {
	e.metrics.RecordOperation(e.schema.Name.String(), op, err)
	switch {
	case err == nil:
		e.notify(ctx, model.NewSuccess(success))
	case model.Alert(err) != "":
		e.notify(ctx, model.NewFailure(model.Alert(err)))
	}
}

// Create validates values and appends a new record
func (e *Editor[T, P]) Create(ctx context.Context, values map[string]string) (*T, error) {
	created, err := e.create(ctx, values)
	e.finish(ctx, "create", e.schema.Label+" created successfully", err)
	return created, err
}

func (e *Editor[T, P]) create(ctx context.Context, values map[string]string) (*T, error) {
	ctrl, _, err := e.submit(e.schema.Defaults, values)
	if err != nil {
		return nil, err
	}

	record := new(T)
	if err := P(record).Bind(ctrl.Values()); err != nil {
		return nil, goerr.Wrap(err, "failed to bind record", goerr.V(CollectionKey, e.schema.Name))
	}

	created, err := e.coll.Create(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create record", goerr.V(CollectionKey, e.schema.Name))
	}

	logging.From(ctx).Info("record created",
		"collection", e.schema.Name,
		"id", P(created).RecordHeader().ID)
	return created, nil
}

// Update validates the record merged with values and applies only the given fields
func (e *Editor[T, P]) Update(ctx context.Context, id types.RecordID, values map[string]string) (*T, error) {
	updated, err := e.update(ctx, id, values)
	e.finish(ctx, "update", e.schema.Label+" updated successfully", err)
	return updated, err
}

func (e *Editor[T, P]) update(ctx context.Context, id types.RecordID, values map[string]string) (*T, error) {
	existing, err := e.coll.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get record",
			goerr.V(CollectionKey, e.schema.Name),
			goerr.V(RecordIDKey, id))
	}

	_, applied, err := e.submit(P(existing).Draft(), values)
	if err != nil {
		return nil, goerr.Wrap(err, "update rejected", goerr.V(RecordIDKey, id))
	}

	updated, err := e.coll.Update(ctx, id, func(record *T) error {
		return P(record).Bind(applied)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update record",
			goerr.V(CollectionKey, e.schema.Name),
			goerr.V(RecordIDKey, id))
	}

	logging.From(ctx).Info("record updated",
		"collection", e.schema.Name,
		"id", id,
		"fields", len(applied))
	return updated, nil
}

// Delete removes one record. Callers go through ConfirmationUseCase first.
func (e *Editor[T, P]) Delete(ctx context.Context, id types.RecordID) error {
	err := e.coll.Delete(ctx, id)
	if err != nil {
		err = goerr.Wrap(err, "failed to delete record",
			goerr.V(CollectionKey, e.schema.Name),
			goerr.V(RecordIDKey, id))
	}
	e.finish(ctx, "delete", e.schema.Label+" deleted successfully", err)
	if err == nil {
		logging.From(ctx).Info("record deleted", "collection", e.schema.Name, "id", id)
	}
	return err
}

// Get returns one record
func (e *Editor[T, P]) Get(ctx context.Context, id types.RecordID) (*T, error) {
	record, err := e.coll.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get record",
			goerr.V(CollectionKey, e.schema.Name),
			goerr.V(RecordIDKey, id))
	}
	return record, nil
}

// List returns the records matching query in collection order. An empty query matches all.
func (e *Editor[T, P]) List(ctx context.Context, query string) ([]*T, error) {
	records, err := e.coll.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list records", goerr.V(CollectionKey, e.schema.Name))
	}
	if strings.TrimSpace(query) == "" {
		return records, nil
	}

	matched := make([]*T, 0, len(records))
	for _, r := range records {
		if P(r).Matches(query) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Title returns the display title of a record for confirmation prompts
func (e *Editor[T, P]) Title(ctx context.Context, id types.RecordID) (string, error) {
	record, err := e.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if title := P(record).Draft()[e.schema.TitleField]; title != "" {
		return title, nil
	}
	return fmt.Sprintf("%s #%s", e.schema.Label, id), nil
}

// ExportCSV writes every record as CSV with a header row
func (e *Editor[T, P]) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := e.coll.List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list records", goerr.V(CollectionKey, e.schema.Name))
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return goerr.Wrap(err, "failed to encode CSV", goerr.V(CollectionKey, e.schema.Name))
	}
	return nil
}

// Len returns the number of records
func (e *Editor[T, P]) Len(ctx context.Context) int {
	return e.coll.Len(ctx)
}
