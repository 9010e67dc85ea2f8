package interfaces

import (
	"context"

	"github.com/secmon-lab/kottos/pkg/domain/model"
)

// Notifier delivers user-facing notifications. Delivery is fire-and-forget and
// implementations must not block the caller on remote I/O.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}
