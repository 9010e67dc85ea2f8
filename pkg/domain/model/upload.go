package model

import (
	"time"

	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// UploadFailedMessage is recorded on tasks whose storage call failed
const UploadFailedMessage = "Failed to upload image"

// UploadTarget names the record field that receives the uploaded URL
type UploadTarget struct {
	Collection types.CollectionName `json:"collection"`
	RecordID   types.RecordID       `json:"recordId"`
	Field      string               `json:"field"`
}

// IsZero reports whether no target was given
func (t UploadTarget) IsZero() bool {
	return t.Collection == "" && t.RecordID == "" && t.Field == ""
}

// UploadTask tracks one background asset upload
type UploadTask struct {
	ID          string            `json:"id"`
	State       types.UploadState `json:"state"`
	Folder      string            `json:"folder"`
	Filename    string            `json:"filename"`
	ContentType string            `json:"contentType"`
	Size        int               `json:"size"`
	Target      *UploadTarget     `json:"target,omitempty"`
	URL         string            `json:"url,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	FinishedAt  time.Time         `json:"finishedAt,omitzero"`
}

// Succeed moves the task to the succeeded state
func (t *UploadTask) Succeed(url string, now time.Time) {
	t.State = types.UploadStateSucceeded
	t.URL = url
	t.FinishedAt = now
}

// Fail moves the task to the failed state
func (t *UploadTask) Fail(message string, now time.Time) {
	t.State = types.UploadStateFailed
	t.Error = message
	t.FinishedAt = now
}
