package notify

import (
	"context"

	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
)

// Log writes notifications to the context logger
type Log struct{}

var _ interfaces.Notifier = Log{}

func (Log) Notify(ctx context.Context, n model.Notification) {
	logger := logging.From(ctx)
	if n.Kind == types.NotificationError {
		logger.Warn("notification", "kind", n.Kind, "message", n.Message)
		return
	}
	logger.Info("notification", "kind", n.Kind, "message", n.Message)
}
