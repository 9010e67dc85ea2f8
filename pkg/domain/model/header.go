package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// Header carries the identity and timestamps shared by every managed record
type Header struct {
	ID        types.RecordID `json:"id" csv:"id"`
	CreatedAt time.Time      `json:"createdAt" csv:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" csv:"updated_at"`
}

// RecordHeader gives collections access to the embedded header
func (h *Header) RecordHeader() *Header {
	return h
}

// Record is satisfied by a pointer to any struct embedding Header
type Record[T any] interface {
	*T
	RecordHeader() *Header
}

// StringList is a list field that renders as a comma separated cell in CSV exports
type StringList []string

// MarshalCSV implements gocsv.TypeMarshaller
func (l StringList) MarshalCSV() (string, error) {
	return strings.Join(l, ","), nil
}

func bindInt(values map[string]string, field string, dst *int) error {
	v, ok := values[field]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return goerr.Wrap(ErrInvalidFieldValue, "value must be an integer",
			goerr.V(FieldIDKey, field),
			goerr.V(FieldValueKey, v))
	}
	*dst = n
	return nil
}

func bindString[S ~string](values map[string]string, field string, dst *S) {
	if v, ok := values[field]; ok {
		*dst = S(strings.TrimSpace(v))
	}
}

func containsFold(q string, texts ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
