package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidFieldValue    = goerr.New("invalid field value")
	ErrScoreBandOverlap     = goerr.New("Score range overlaps with existing ranges")
	ErrScoreBandOrder       = goerr.New("Start score must be less than end score")
	ErrScoreBandRange       = goerr.New("Scores must be between 1 and 25")
	ErrAssetTooLarge        = goerr.New("File size must be less than 10MB")
	ErrUnsupportedMediaType = goerr.New("File type must be JPEG, PNG, GIF or WebP")
	ErrEmptyAsset           = goerr.New("File is empty")
)

// Context keys for error values
const (
	FieldIDKey       = "field_id"
	FieldValueKey    = "field_value"
	RecordIDKey      = "record_id"
	ContentTypeKey   = "content_type"
	AcceptedTypesKey = "accepted_types"
	SizeKey          = "size"
)

// Alert returns the user-facing text of the first known conflict or asset sentinel in err's
// chain. It returns an empty string when err carries none of them.
func Alert(err error) string {
	for _, sentinel := range []error{
		ErrScoreBandOverlap,
		ErrScoreBandOrder,
		ErrScoreBandRange,
		ErrAssetTooLarge,
		ErrUnsupportedMediaType,
		ErrEmptyAsset,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ""
}

// IsScoreBandConflict reports whether err is a rejected score band
func IsScoreBandConflict(err error) bool {
	return errors.Is(err, ErrScoreBandOverlap) ||
		errors.Is(err, ErrScoreBandOrder) ||
		errors.Is(err, ErrScoreBandRange)
}
