package types

import (
	"regexp"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// RecordID identifies a record within one collection. IDs are decimal strings issued by
// a per-collection counter and are never reused.
type RecordID string

// NewRecordID formats a counter value as a RecordID
func NewRecordID(n int64) RecordID {
	return RecordID(strconv.FormatInt(n, 10))
}

// Validate checks that the RecordID is non-empty
func (id RecordID) Validate() error {
	if id == "" {
		return goerr.New("record ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RecordID
func (id RecordID) String() string {
	return string(id)
}

// CollectionName is the URL-safe name of a managed collection, e.g. "control-ratings"
type CollectionName string

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the CollectionName is valid
func (n CollectionName) Validate() error {
	if n == "" {
		return goerr.New("collection name cannot be empty")
	}
	if !namePattern.MatchString(string(n)) {
		return goerr.New("collection name must be lowercase alphanumeric with hyphens", goerr.V("name", n))
	}
	return nil
}

// String returns the string representation of CollectionName
func (n CollectionName) String() string {
	return string(n)
}
