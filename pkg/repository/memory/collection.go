package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// Collection keeps the records of one named collection in insertion order. IDs come from
// a counter that only moves forward, so a deleted ID is never issued again.
type Collection[T any, P model.Record[T]] struct {
	mu      sync.RWMutex
	name    types.CollectionName
	records []*T
	nextID  int64
	order   func(a, b *T) int
	guard   func(candidate *T, others []*T) error
	now     func() time.Time
}

// Option configures a Collection
type Option[T any, P model.Record[T]] func(*Collection[T, P])

// WithOrder sorts List results with cmp instead of insertion order
func WithOrder[T any, P model.Record[T]](cmp func(a, b *T) int) Option[T, P] {
	return func(c *Collection[T, P]) {
		c.order = cmp
	}
}

// WithGuard runs check under the write lock before every create and update. others holds
// every stored record except the one being written.
func WithGuard[T any, P model.Record[T]](check func(candidate *T, others []*T) error) Option[T, P] {
	return func(c *Collection[T, P]) {
		c.guard = check
	}
}

// WithClock replaces time.Now for timestamps
func WithClock[T any, P model.Record[T]](now func() time.Time) Option[T, P] {
	return func(c *Collection[T, P]) {
		c.now = now
	}
}

// NewCollection creates an empty collection
func NewCollection[T any, P model.Record[T]](name types.CollectionName, opts ...Option[T, P]) *Collection[T, P] {
	c := &Collection[T, P]{
		name:   name,
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.Collection[model.ControlCategory] = &Collection[model.ControlCategory, *model.ControlCategory]{}

func header[T any, P model.Record[T]](r *T) *model.Header {
	return P(r).RecordHeader()
}

// clone copies r. Records holding slices provide a Clone method so the copy shares nothing.
func clone[T any](r *T) *T {
	if c, ok := any(r).(interface{ Clone() *T }); ok {
		return c.Clone()
	}
	copied := *r
	return &copied
}

func (c *Collection[T, P]) indexOf(id types.RecordID) int {
	return slices.IndexFunc(c.records, func(r *T) bool {
		return header[T, P](r).ID == id
	})
}

func (c *Collection[T, P]) others(id types.RecordID) []*T {
	others := make([]*T, 0, len(c.records))
	for _, r := range c.records {
		if header[T, P](r).ID != id {
			others = append(others, r)
		}
	}
	return others
}

func (c *Collection[T, P]) notFound(id types.RecordID) error {
	return goerr.Wrap(ErrNotFound, "record not found",
		goerr.V("collection", c.name),
		goerr.V("id", id))
}

func (c *Collection[T, P]) Create(ctx context.Context, record *T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := clone(record)
	h := header[T, P](created)
	h.ID = types.NewRecordID(c.nextID)

	if c.guard != nil {
		if err := c.guard(created, c.records); err != nil {
			return nil, goerr.Wrap(err, "record rejected", goerr.V("collection", c.name))
		}
	}

	now := c.now()
	h.CreatedAt = now
	h.UpdatedAt = now
	c.nextID++

	c.records = append(c.records, created)
	return clone(created), nil
}

func (c *Collection[T, P]) Get(ctx context.Context, id types.RecordID) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil, c.notFound(id)
	}
	return clone(c.records[idx]), nil
}

func (c *Collection[T, P]) List(ctx context.Context) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]*T, len(c.records))
	for i, r := range c.records {
		records[i] = clone(r)
	}
	if c.order != nil {
		slices.SortStableFunc(records, c.order)
	}
	return records, nil
}

func (c *Collection[T, P]) Update(ctx context.Context, id types.RecordID, mutate func(record *T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil, c.notFound(id)
	}

	existing := header[T, P](c.records[idx])
	updated := clone(c.records[idx])
	if err := mutate(updated); err != nil {
		return nil, goerr.Wrap(err, "failed to apply update",
			goerr.V("collection", c.name),
			goerr.V("id", id))
	}

	h := header[T, P](updated)
	h.ID = existing.ID
	h.CreatedAt = existing.CreatedAt

	if c.guard != nil {
		if err := c.guard(updated, c.others(id)); err != nil {
			return nil, goerr.Wrap(err, "record rejected",
				goerr.V("collection", c.name),
				goerr.V("id", id))
		}
	}

	h.UpdatedAt = c.now()
	c.records[idx] = updated
	return clone(updated), nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id types.RecordID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return c.notFound(id)
	}
	c.records = slices.Delete(c.records, idx, idx+1)
	return nil
}

func (c *Collection[T, P]) Len(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
