package model

import (
	"time"

	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// PendingDelete is the subject held by a confirmation gate until the delete is confirmed
type PendingDelete struct {
	Ticket     string               `json:"ticket"`
	Collection types.CollectionName `json:"collection"`
	RecordID   types.RecordID       `json:"recordId"`
	Message    string               `json:"message"`
	CreatedAt  time.Time            `json:"createdAt"`
}
