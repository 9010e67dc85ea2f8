package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/service/worker"
)

func putTask(t *testing.T, repo *memory.Memory, task *model.UploadTask) {
	t.Helper()
	gt.NoError(t, repo.UploadTasks().Put(context.Background(), task)).Required()
}

func TestUploadSweeperSweep(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	old := &model.UploadTask{ID: "old", CreatedAt: now.Add(-3 * time.Hour)}
	old.Succeed("https://example.com/old.png", now.Add(-2*time.Hour))
	putTask(t, repo, old)

	fresh := &model.UploadTask{ID: "fresh", CreatedAt: now.Add(-10 * time.Minute)}
	fresh.Fail(model.UploadFailedMessage, now.Add(-5*time.Minute))
	putTask(t, repo, fresh)

	putTask(t, repo, &model.UploadTask{ID: "pending", State: types.UploadStatePending, CreatedAt: now.Add(-5 * time.Hour)})

	w := worker.NewUploadSweeper(repo.UploadTasks(), time.Minute, time.Hour,
		worker.WithSweeperClock(func() time.Time { return now }))

	pruned, err := w.Sweep(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, pruned).Equal(1)

	_, err = repo.UploadTasks().Get(ctx, "old")
	gt.Error(t, err).Is(memory.ErrNotFound)

	_, err = repo.UploadTasks().Get(ctx, "fresh")
	gt.NoError(t, err)
	_, err = repo.UploadTasks().Get(ctx, "pending")
	gt.NoError(t, err)
}

func TestUploadSweeperLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	old := &model.UploadTask{ID: "old", CreatedAt: time.Now().Add(-2 * time.Hour)}
	old.Succeed("https://example.com/old.png", time.Now().Add(-2*time.Hour))
	putTask(t, repo, old)

	w := worker.NewUploadSweeper(repo.UploadTasks(), 10*time.Millisecond, time.Hour)
	gt.NoError(t, w.Start(ctx)).Required()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		tasks, err := repo.UploadTasks().List(ctx)
		gt.NoError(t, err).Required()
		if len(tasks) == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	w.Stop()

	tasks, err := repo.UploadTasks().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, tasks).Length(0)
}

func TestUploadSweeperRejectsZeroInterval(t *testing.T) {
	w := worker.NewUploadSweeper(memory.New().UploadTasks(), 0, time.Hour)
	gt.Error(t, w.Start(context.Background()))
}

func TestUploadSweeperStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := worker.NewUploadSweeper(memory.New().UploadTasks(), time.Hour, time.Hour)
	gt.NoError(t, w.Start(ctx)).Required()

	cancel()
	// Stop must not block after the loop exited on its own
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked after context cancel")
	}
}

type fakeExpirer struct {
	before []time.Time
}

func (f *fakeExpirer) Expire(ctx context.Context, before time.Time) int {
	f.before = append(f.before, before)
	return 1
}

func TestUploadSweeperExpiresConfirmations(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	expirer := &fakeExpirer{}

	w := worker.NewUploadSweeper(memory.New().UploadTasks(), time.Minute, time.Hour,
		worker.WithSweeperClock(func() time.Time { return now }),
		worker.WithConfirmationExpiry(expirer, 15*time.Minute))

	_, err := w.Sweep(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, expirer.before).Length(1)
	gt.Value(t, expirer.before[0]).Equal(now.Add(-15 * time.Minute))
}
