package model

import (
	"time"

	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// Notification is a user-facing message about the outcome of an operation
type Notification struct {
	Kind      types.NotificationKind `json:"kind"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NewSuccess creates a success notification
func NewSuccess(message string) Notification {
	return Notification{Kind: types.NotificationSuccess, Message: message, CreatedAt: time.Now()}
}

// NewFailure creates an error notification
func NewFailure(message string) Notification {
	return Notification{Kind: types.NotificationError, Message: message, CreatedAt: time.Now()}
}
