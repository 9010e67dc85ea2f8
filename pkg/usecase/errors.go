package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrValidation = goerr.New("validation failed")

	// Not found errors
	ErrUnknownCollection = goerr.New("unknown collection")
	ErrUnknownTicket     = goerr.New("unknown confirmation ticket")
	ErrUnknownField      = goerr.New("unknown field")

	// Upload errors
	ErrNotImageField = goerr.New("field does not hold an image")
)

// Context keys for error values
const (
	CollectionKey = "collection"
	RecordIDKey   = "record_id"
	TicketKey     = "ticket"
	FieldKey      = "field"
	TaskIDKey     = "task_id"
)

// ValidationError carries the per-field messages of a rejected submission
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := sortedKeys(e.Fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
