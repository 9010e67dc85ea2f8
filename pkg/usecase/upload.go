package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/utils/async"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

// DefaultUploadPollInterval is how often Wait checks a task
const DefaultUploadPollInterval = 20 * time.Millisecond

// UploadUseCase stores images in the background. Each upload is a task whose state moves
// from pending to succeeded or failed; when the task names a target field, the stored
// URL is written into that record field on success.
type UploadUseCase struct {
	tasks    interfaces.UploadTaskRepository
	storage  interfaces.AssetStorage
	registry *Registry
	notifier interfaces.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewUploadUseCase creates an UploadUseCase. notifier and m may be nil.
func NewUploadUseCase(tasks interfaces.UploadTaskRepository, storage interfaces.AssetStorage, registry *Registry, notifier interfaces.Notifier, m *metrics.Metrics) *UploadUseCase {
	return &UploadUseCase{
		tasks:    tasks,
		storage:  storage,
		registry: registry,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

func (uc *UploadUseCase) notify(ctx context.Context, n model.Notification) {
	if uc.notifier != nil {
		uc.notifier.Notify(ctx, n)
	}
}

// Start validates the asset and target, records a pending task and uploads in the
// background. Size and media type violations are rejected before any task exists.
func (uc *UploadUseCase) Start(ctx context.Context, asset model.Asset, target *model.UploadTarget) (*model.UploadTask, error) {
	if err := asset.Validate(); err != nil {
		return nil, goerr.Wrap(err, "asset rejected", goerr.V("filename", asset.Filename))
	}
	if target != nil && target.IsZero() {
		target = nil
	}
	if target != nil {
		if err := uc.checkTarget(ctx, *target); err != nil {
			return nil, err
		}
	}

	task := &model.UploadTask{
		ID:          uuid.NewString(),
		State:       types.UploadStatePending,
		Folder:      asset.Folder,
		Filename:    asset.Filename,
		ContentType: asset.ContentType,
		Size:        len(asset.Data),
		Target:      target,
		CreatedAt:   uc.now(),
	}
	if err := uc.tasks.Put(ctx, task); err != nil {
		return nil, goerr.Wrap(err, "failed to save upload task")
	}

	logging.From(ctx).Info("upload started",
		"task_id", task.ID,
		"content_type", asset.ContentType,
		"size", len(asset.Data))

	started := *task
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.run(ctx, task, asset)
	})

	return &started, nil
}

func (uc *UploadUseCase) checkTarget(ctx context.Context, target model.UploadTarget) error {
	editor, err := uc.registry.Editor(target.Collection)
	if err != nil {
		return err
	}
	if !editor.Schema().isImageField(target.Field) {
		return goerr.Wrap(ErrNotImageField, "upload target is not an image field",
			goerr.V(CollectionKey, target.Collection),
			goerr.V(FieldKey, target.Field))
	}
	if _, err := editor.Get(ctx, target.RecordID); err != nil {
		return goerr.Wrap(err, "upload target record not found")
	}
	return nil
}

// run performs the upload and moves the task to its final state
func (uc *UploadUseCase) run(ctx context.Context, task *model.UploadTask, asset model.Asset) error {
	key := asset.ObjectKey(task.ID)
	url, err := uc.storage.Put(ctx, key, asset.ContentType, asset.Data)
	if err != nil {
		uc.fail(ctx, task, model.UploadFailedMessage)
		return goerr.Wrap(err, "failed to upload asset",
			goerr.V(TaskIDKey, task.ID),
			goerr.V("key", key))
	}

	if task.Target != nil {
		editor, err := uc.registry.Editor(task.Target.Collection)
		if err == nil {
			_, err = editor.Update(ctx, task.Target.RecordID, map[string]string{task.Target.Field: url})
		}
		if err != nil {
			uc.fail(ctx, task, "Failed to attach image")
			return goerr.Wrap(err, "failed to attach uploaded asset",
				goerr.V(TaskIDKey, task.ID),
				goerr.V(CollectionKey, task.Target.Collection),
				goerr.V(RecordIDKey, task.Target.RecordID))
		}
	}

	// saved last: a finished task implies its notification was sent
	task.Succeed(url, uc.now())
	uc.metrics.UploadFinished(task.State.String())
	uc.notify(ctx, model.NewSuccess("Image uploaded successfully"))
	if err := uc.tasks.Put(ctx, task); err != nil {
		return goerr.Wrap(err, "failed to save upload task", goerr.V(TaskIDKey, task.ID))
	}

	logging.From(ctx).Info("upload succeeded", "task_id", task.ID, "url", url)
	return nil
}

func (uc *UploadUseCase) fail(ctx context.Context, task *model.UploadTask, message string) {
	task.Fail(message, uc.now())
	uc.metrics.UploadFinished(task.State.String())
	uc.notify(ctx, model.NewFailure(message))
	if err := uc.tasks.Put(ctx, task); err != nil {
		logging.From(ctx).Error("failed to save upload task", "task_id", task.ID, "error", err)
	}
}

// Get returns the current state of a task
func (uc *UploadUseCase) Get(ctx context.Context, id string) (*model.UploadTask, error) {
	task, err := uc.tasks.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get upload task", goerr.V(TaskIDKey, id))
	}
	return task, nil
}

// Wait polls the task until it finishes or ctx ends
func (uc *UploadUseCase) Wait(ctx context.Context, id string) (*model.UploadTask, error) {
	ticker := time.NewTicker(DefaultUploadPollInterval)
	defer ticker.Stop()

	for {
		task, err := uc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if task.State.IsFinished() {
			return task, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "upload did not finish", goerr.V(TaskIDKey, id))
		}
	}
}
