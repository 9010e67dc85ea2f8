package notify

import (
	"context"
	"sync"

	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
)

// DefaultFeedSize is the number of notifications a Feed keeps
const DefaultFeedSize = 100

// Feed keeps the most recent notifications so clients can poll them
type Feed struct {
	mu    sync.RWMutex
	items []model.Notification
	size  int
}

var _ interfaces.Notifier = &Feed{}

// NewFeed creates a feed that keeps at most size notifications
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(ctx context.Context, n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0], f.items[over:]...)
	}
}

// Recent returns up to limit notifications, newest first. A non-positive limit returns all.
func (f *Feed) Recent(limit int) []model.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	recent := make([]model.Notification, 0, limit)
	for i := len(f.items) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, f.items[i])
	}
	return recent
}
