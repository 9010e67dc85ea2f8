package notify

import (
	"context"

	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
)

// Multi fans a notification out to every notifier in order
type Multi []interfaces.Notifier

var _ interfaces.Notifier = Multi{}

func (m Multi) Notify(ctx context.Context, n model.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
