package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
)

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu  sync.Mutex
	got []model.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.got))
	for i, n := range r.got {
		msgs[i] = n.Message
	}
	return msgs
}

func (r *recordingNotifier) last() model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return model.Notification{}
	}
	return r.got[len(r.got)-1]
}

func newUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory, *recordingNotifier) {
	t.Helper()
	repo := memory.New()
	notifier := &recordingNotifier{}
	uc := usecase.New(repo, append([]usecase.Option{usecase.WithNotifier(notifier)}, opts...)...)
	return uc, repo, notifier
}

func editorOf(t *testing.T, uc *usecase.UseCases, name types.CollectionName) usecase.CollectionEditor {
	t.Helper()
	editor, err := uc.Collections.Editor(name)
	gt.NoError(t, err).Required()
	return editor
}

func seedControlCategories(t *testing.T, repo *memory.Memory) {
	t.Helper()
	for _, name := range []string{"Preventive", "Detective", "Directive"} {
		_, err := repo.ControlCategories().Create(context.Background(), &model.ControlCategory{Name: name})
		gt.NoError(t, err).Required()
	}
}
