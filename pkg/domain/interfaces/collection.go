package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// Collection defines data access for one named collection of records
type Collection[T any] interface {
	// Create assigns the next ID and timestamps, appends the record and returns a copy
	Create(ctx context.Context, record *T) (*T, error)

	// Get retrieves a record by ID
	Get(ctx context.Context, id types.RecordID) (*T, error)

	// List retrieves all records in collection order
	List(ctx context.Context) ([]*T, error)

	// Update applies mutate to a copy of the record and stores it when mutate succeeds.
	// ID and CreatedAt are restored after mutate runs.
	Update(ctx context.Context, id types.RecordID, mutate func(record *T) error) (*T, error)

	// Delete removes exactly the record with the given ID
	Delete(ctx context.Context, id types.RecordID) error

	// Len returns the number of records
	Len(ctx context.Context) int
}

// Repository gives access to every managed collection
type Repository interface {
	ControlCategories() Collection[model.ControlCategory]
	ControlFrequencies() Collection[model.ControlFrequency]
	ControlRatings() Collection[model.ControlRating]
	ObservationRatings() Collection[model.ObservationRating]
	InherentRiskLevels() Collection[model.InherentRiskLevel]
	ScoreBands() Collection[model.ScoreBand]
	RiskCategories() Collection[model.RiskCategory]
	Entities() Collection[model.Entity]
	Users() Collection[model.User]
	Roles() Collection[model.Role]
	Workflows() Collection[model.WorkflowItem]

	// UploadTasks tracks background asset uploads
	UploadTasks() UploadTaskRepository
}

// UploadTaskRepository defines persistence for asset upload tasks
type UploadTaskRepository interface {
	Put(ctx context.Context, task *model.UploadTask) error
	Get(ctx context.Context, id string) (*model.UploadTask, error)
	List(ctx context.Context) ([]*model.UploadTask, error)
	// Prune deletes finished tasks that finished before the given time and returns the count
	Prune(ctx context.Context, before time.Time) (int, error)
}
