package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/gate"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

// ConfirmationUseCase puts a confirmation gate in front of every delete. A delete request
// opens a gate and returns a ticket; the record is removed only when the ticket is
// confirmed. Cancelling leaves the collection untouched.
type ConfirmationUseCase struct {
	registry *Registry
	metrics  *metrics.Metrics
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]*gate.Gate[model.PendingDelete]
}

// NewConfirmationUseCase creates a ConfirmationUseCase
func NewConfirmationUseCase(registry *Registry, m *metrics.Metrics) *ConfirmationUseCase {
	return &ConfirmationUseCase{
		registry: registry,
		metrics:  m,
		now:      time.Now,
		pending:  make(map[string]*gate.Gate[model.PendingDelete]),
	}
}

// RequestDelete opens a gate for deleting one record and returns the pending request
func (uc *ConfirmationUseCase) RequestDelete(ctx context.Context, name types.CollectionName, id types.RecordID) (*model.PendingDelete, error) {
	editor, err := uc.registry.Editor(name)
	if err != nil {
		return nil, err
	}

	title, err := editor.Title(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "cannot request delete")
	}

	subject := model.PendingDelete{
		Ticket:     uuid.NewString(),
		Collection: name,
		RecordID:   id,
		Message:    fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", title),
		CreatedAt:  uc.now(),
	}

	g := gate.New[model.PendingDelete]()
	if err := g.Open(subject); err != nil {
		return nil, goerr.Wrap(err, "failed to open confirmation gate")
	}

	uc.mu.Lock()
	uc.pending[subject.Ticket] = g
	count := len(uc.pending)
	uc.mu.Unlock()
	uc.metrics.SetPendingConfirmations(count)

	logging.From(ctx).Info("delete requested",
		"ticket", subject.Ticket,
		"collection", name,
		"id", id)
	return &subject, nil
}

// take removes the gate of ticket from the pending set
func (uc *ConfirmationUseCase) take(ticket string) (*gate.Gate[model.PendingDelete], error) {
	uc.mu.Lock()
	g, ok := uc.pending[ticket]
	delete(uc.pending, ticket)
	count := len(uc.pending)
	uc.mu.Unlock()

	if !ok {
		return nil, goerr.Wrap(ErrUnknownTicket, "confirmation ticket not found", goerr.V(TicketKey, ticket))
	}
	uc.metrics.SetPendingConfirmations(count)
	return g, nil
}

// Confirm closes the gate of ticket and deletes the pending record
func (uc *ConfirmationUseCase) Confirm(ctx context.Context, ticket string) (*model.PendingDelete, error) {
	g, err := uc.take(ticket)
	if err != nil {
		return nil, err
	}

	subject, err := g.Confirm()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to confirm", goerr.V(TicketKey, ticket))
	}

	editor, err := uc.registry.Editor(subject.Collection)
	if err != nil {
		return nil, err
	}
	if err := editor.Delete(ctx, subject.RecordID); err != nil {
		return nil, goerr.Wrap(err, "confirmed delete failed", goerr.V(TicketKey, ticket))
	}
	return &subject, nil
}

// Cancel closes the gate of ticket without touching the collection
func (uc *ConfirmationUseCase) Cancel(ctx context.Context, ticket string) error {
	g, err := uc.take(ticket)
	if err != nil {
		return err
	}
	if err := g.Cancel(); err != nil {
		return goerr.Wrap(err, "failed to cancel", goerr.V(TicketKey, ticket))
	}

	logging.From(ctx).Info("delete cancelled", "ticket", ticket)
	return nil
}

// Pending lists open delete requests, oldest first
func (uc *ConfirmationUseCase) Pending(ctx context.Context) []model.PendingDelete {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	subjects := make([]model.PendingDelete, 0, len(uc.pending))
	for _, g := range uc.pending {
		if subject, ok := g.Subject(); ok {
			subjects = append(subjects, subject)
		}
	}
	slices.SortFunc(subjects, func(a, b model.PendingDelete) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Ticket, b.Ticket)
	})
	return subjects
}

// Expire cancels every request opened before the given time and returns how many
func (uc *ConfirmationUseCase) Expire(ctx context.Context, before time.Time) int {
	uc.mu.Lock()
	var expired []string
	for ticket, g := range uc.pending {
		if subject, ok := g.Subject(); ok && subject.CreatedAt.Before(before) {
			expired = append(expired, ticket)
		}
	}
	uc.mu.Unlock()

	count := 0
	for _, ticket := range expired {
		if err := uc.Cancel(ctx, ticket); err == nil {
			count++
		}
	}
	return count
}
