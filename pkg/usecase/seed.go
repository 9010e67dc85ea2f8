package usecase

import (
	"context"
	"errors"

	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// SeedEntry is one record of a seed catalog in form-field representation
type SeedEntry struct {
	Collection types.CollectionName
	Values     map[string]string
}

// SeedIssue represents a catalog entry that could not be loaded
type SeedIssue struct {
	Collection types.CollectionName
	// Index is the position of the entry within its collection
	Index   int
	Field   string
	Message string
}

// SeedResult holds the outcome of loading a catalog
type SeedResult struct {
	Created map[types.CollectionName]int
	Issues  []SeedIssue
}

// HasIssues returns true if there are any rejected entries
func (r *SeedResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a seed issue to the result
func (r *SeedResult) AddIssue(issue SeedIssue) {
	r.Issues = append(r.Issues, issue)
}

// Seed loads entries into repo through the collection editors, so every entry passes the
// same rules as a user submission. Rejected entries are reported and skipped. No
// notifications are emitted.
func Seed(ctx context.Context, repo interfaces.Repository, entries []SeedEntry) *SeedResult {
	registry := NewRegistry(repo, nil, nil)
	result := &SeedResult{Created: make(map[types.CollectionName]int)}
	index := make(map[types.CollectionName]int)

	for _, entry := range entries {
		idx := index[entry.Collection]
		index[entry.Collection]++

		editor, err := registry.Editor(entry.Collection)
		if err != nil {
			result.AddIssue(SeedIssue{
				Collection: entry.Collection,
				Index:      idx,
				Message:    "unknown collection",
			})
			continue
		}

		if _, err := editor.Create(ctx, entry.Values); err != nil {
			addCreateIssues(result, entry.Collection, idx, err)
			continue
		}
		result.Created[entry.Collection]++
	}

	return result
}

func addCreateIssues(result *SeedResult, name types.CollectionName, idx int, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		for _, field := range sortedKeys(verr.Fields) {
			result.AddIssue(SeedIssue{
				Collection: name,
				Index:      idx,
				Field:      field,
				Message:    verr.Fields[field],
			})
		}
	case model.Alert(err) != "":
		result.AddIssue(SeedIssue{Collection: name, Index: idx, Message: model.Alert(err)})
	default:
		result.AddIssue(SeedIssue{Collection: name, Index: idx, Message: err.Error()})
	}
}
