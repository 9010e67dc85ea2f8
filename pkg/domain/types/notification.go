package types

// NotificationKind is the severity of a user-facing notification
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// String returns the string representation of the kind
func (k NotificationKind) String() string {
	return string(k)
}

// UploadState is the lifecycle state of an asset upload task
type UploadState string

const (
	UploadStatePending   UploadState = "pending"
	UploadStateSucceeded UploadState = "succeeded"
	UploadStateFailed    UploadState = "failed"
)

// IsFinished reports whether the upload reached a terminal state
func (s UploadState) IsFinished() bool {
	return s == UploadStateSucceeded || s == UploadStateFailed
}

// String returns the string representation of the state
func (s UploadState) String() string {
	return string(s)
}
