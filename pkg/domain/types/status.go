package types

import "fmt"

// ActiveStatus is the on/off state shared by users and entities
type ActiveStatus string

const (
	ActiveStatusActive   ActiveStatus = "active"
	ActiveStatusInactive ActiveStatus = "inactive"
)

// AllActiveStatuses returns all valid active statuses
func AllActiveStatuses() []ActiveStatus {
	return []ActiveStatus{ActiveStatusActive, ActiveStatusInactive}
}

// IsValid checks if the status is valid
func (s ActiveStatus) IsValid() bool {
	switch s {
	case ActiveStatusActive, ActiveStatusInactive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s ActiveStatus) String() string {
	return string(s)
}

// ApprovalStatus is the delivery state of roles and workflow items
type ApprovalStatus string

const (
	ApprovalStatusDelivered ApprovalStatus = "Delivered"
	ApprovalStatusPending   ApprovalStatus = "Pending"
	ApprovalStatusRejected  ApprovalStatus = "Rejected"
)

// AllApprovalStatuses returns all valid approval statuses
func AllApprovalStatuses() []ApprovalStatus {
	return []ApprovalStatus{
		ApprovalStatusDelivered,
		ApprovalStatusPending,
		ApprovalStatusRejected,
	}
}

// IsValid checks if the approval status is valid
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusDelivered, ApprovalStatusPending, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the approval status
func (s ApprovalStatus) String() string {
	return string(s)
}

// ParseApprovalStatus parses a string into an ApprovalStatus
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid approval status: %s", s)
	}
	return status, nil
}
