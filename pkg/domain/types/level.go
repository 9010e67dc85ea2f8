package types

import "fmt"

// LevelType distinguishes the two axes of the inherent risk matrix
type LevelType string

const (
	LevelTypeImpact     LevelType = "Impact"
	LevelTypeLikelihood LevelType = "Likelihood"
)

// AllLevelTypes returns all valid level types
func AllLevelTypes() []LevelType {
	return []LevelType{LevelTypeImpact, LevelTypeLikelihood}
}

// IsValid checks if the level type is valid
func (t LevelType) IsValid() bool {
	return t == LevelTypeImpact || t == LevelTypeLikelihood
}

// String returns the string representation of the level type
func (t LevelType) String() string {
	return string(t)
}

// ParseLevelType parses a string into a LevelType
func ParseLevelType(s string) (LevelType, error) {
	t := LevelType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid level type: %s", s)
	}
	return t, nil
}

// Priority of a workflow item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// AllPriorities returns all valid priorities, highest first
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}
