package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/model"
)

type uploadTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*model.UploadTask
}

func newUploadTaskRepository() *uploadTaskRepository {
	return &uploadTaskRepository{
		tasks: make(map[string]*model.UploadTask),
	}
}

func copyUploadTask(t *model.UploadTask) *model.UploadTask {
	copied := *t
	if t.Target != nil {
		target := *t.Target
		copied.Target = &target
	}
	return &copied
}

func (r *uploadTaskRepository) Put(ctx context.Context, task *model.UploadTask) error {
	if task.ID == "" {
		return goerr.New("upload task ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = copyUploadTask(task)
	return nil
}

func (r *uploadTaskRepository) Get(ctx context.Context, id string) (*model.UploadTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "upload task not found", goerr.V("id", id))
	}
	return copyUploadTask(task), nil
}

func (r *uploadTaskRepository) List(ctx context.Context) ([]*model.UploadTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.UploadTask, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, copyUploadTask(task))
	}
	slices.SortFunc(tasks, func(a, b *model.UploadTask) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

func (r *uploadTaskRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, task := range r.tasks {
		if task.State.IsFinished() && task.FinishedAt.Before(before) {
			delete(r.tasks, id)
			pruned++
		}
	}
	return pruned, nil
}
