package usecase

import (
	"maps"

	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/form"
)

// Schema describes the editable surface of a collection
type Schema struct {
	Name types.CollectionName
	// Label is the singular display name used in notifications, e.g. "Control category"
	Label string
	// Fields lists the form keys in display order
	Fields []string
	// TitleField names the field shown in confirmation prompts
	TitleField string
	// ImageFields lists fields that accept an uploaded image URL
	ImageFields []string
	Defaults    map[string]string
	Rules       form.Rules
}

// SchemaInfo is the client-facing description of a collection
type SchemaInfo struct {
	Name        types.CollectionName `json:"name"`
	Label       string               `json:"label"`
	Fields      []string             `json:"fields"`
	Validated   []string             `json:"validated"`
	ImageFields []string             `json:"imageFields,omitempty"`
	Defaults    map[string]string    `json:"defaults,omitempty"`
	Count       int                  `json:"count"`
}

func (s Schema) info(count int) SchemaInfo {
	return SchemaInfo{
		Name:        s.Name,
		Label:       s.Label,
		Fields:      s.Fields,
		Validated:   s.Rules.Fields(),
		ImageFields: s.ImageFields,
		Defaults:    maps.Clone(s.Defaults),
		Count:       count,
	}
}

func (s Schema) hasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func (s Schema) isImageField(name string) bool {
	for _, f := range s.ImageFields {
		if f == name {
			return true
		}
	}
	return false
}
