package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
)

// ConfirmationExpirer cancels delete confirmations opened before a point in time
type ConfirmationExpirer interface {
	Expire(ctx context.Context, before time.Time) int
}

// UploadSweeper prunes finished upload tasks once they are older than the retention period.
// Pending tasks are never pruned. When an expirer is set, stale delete confirmations are
// cancelled in the same cycle.
//
// Architecture assumptions:
// - Single server instance; upload tasks live in process memory
type UploadSweeper struct {
	tasks     interfaces.UploadTaskRepository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	expirer   ConfirmationExpirer
	ttl       time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// SweeperOption configures an UploadSweeper
type SweeperOption func(*UploadSweeper)

// WithSweeperClock replaces time.Now
func WithSweeperClock(now func() time.Time) SweeperOption {
	return func(w *UploadSweeper) {
		w.now = now
	}
}

// WithConfirmationExpiry cancels confirmations older than ttl on every sweep
func WithConfirmationExpiry(expirer ConfirmationExpirer, ttl time.Duration) SweeperOption {
	return func(w *UploadSweeper) {
		w.expirer = expirer
		w.ttl = ttl
	}
}

// NewUploadSweeper creates a new worker that prunes finished upload tasks
func NewUploadSweeper(tasks interfaces.UploadTaskRepository, interval, retention time.Duration, opts ...SweeperOption) *UploadSweeper {
	w := &UploadSweeper{
		tasks:     tasks,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background sweep loop. It does not block.
func (w *UploadSweeper) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("sweep interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Upload sweeper starting",
		"interval", w.interval.String(),
		"retention", w.retention.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *UploadSweeper) Stop() {
	logging.Default().Info("Upload sweeper stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Upload sweeper stopped")
}

func (w *UploadSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				logging.Default().Error("Upload sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Upload sweeper context cancelled")
			return
		}
	}
}

// Sweep performs a single prune cycle and returns the number of removed tasks
func (w *UploadSweeper) Sweep(ctx context.Context) (int, error) {
	now := w.now()
	if w.expirer != nil && w.ttl > 0 {
		if expired := w.expirer.Expire(ctx, now.Add(-w.ttl)); expired > 0 {
			logging.Default().Info("Delete confirmations expired", "count", expired)
		}
	}

	before := now.Add(-w.retention)

	pruned, err := w.tasks.Prune(ctx, before)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to prune upload tasks", goerr.V("before", before))
	}

	if pruned > 0 {
		logging.Default().Info("Upload tasks pruned",
			"count", pruned,
			"before", before)
	}
	return pruned, nil
}
