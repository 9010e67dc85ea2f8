package memory

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when a record or task does not exist
	ErrNotFound = goerr.New("not found")
)
