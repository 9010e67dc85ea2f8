package config

import (
	_ "embed"
	"errors"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/urfave/cli/v3"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog holds the seed catalog location. Without a path the embedded default catalog
// is used.
type Catalog struct {
	path  string
	empty bool
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Seed catalog TOML file (default: built-in sample data)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("KOTTOS_CATALOG"),
			Destination: &x.path,
		},
		&cli.BoolFlag{
			Name:        "empty",
			Usage:       "Start with empty collections instead of the default catalog",
			Category:    "Catalog",
			Sources:     cli.EnvVars("KOTTOS_EMPTY"),
			Destination: &x.empty,
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	path := x.path
	if path == "" {
		path = "(built-in)"
	}
	return slog.GroupValue(
		slog.String("path", path),
		slog.Bool("empty", x.empty),
	)
}

// Load reads and parses the catalog
func (x *Catalog) Load() ([]usecase.SeedEntry, error) {
	if x.empty && x.path == "" {
		return nil, nil
	}

	data := defaultCatalog
	if x.path != "" {
		raw, err := os.ReadFile(x.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, goerr.Wrap(ErrConfigNotFound, "catalog file not found", goerr.V(ConfigPathKey, x.path))
			}
			return nil, goerr.Wrap(err, "failed to read catalog", goerr.V(ConfigPathKey, x.path))
		}
		data = raw
	}

	entries, err := ParseCatalog(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog", goerr.V(ConfigPathKey, x.path))
	}
	return entries, nil
}

// ParseCatalog decodes a TOML catalog whose top-level keys are collection names holding
// arrays of tables. Known collections come first in registration order, unknown names
// follow alphabetically so that seeding can report them.
func ParseCatalog(data []byte) ([]usecase.SeedEntry, error) {
	var raw map[string][]map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "catalog is not a set of table arrays", goerr.V("cause", err.Error()))
	}

	var names []types.CollectionName
	for _, name := range usecase.CollectionNames() {
		if _, ok := raw[name.String()]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for key := range raw {
		if !slices.Contains(names, types.CollectionName(key)) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	for _, key := range unknown {
		names = append(names, types.CollectionName(key))
	}

	var entries []usecase.SeedEntry
	for _, name := range names {
		for _, item := range raw[name.String()] {
			values := make(map[string]string, len(item))
			for field, v := range item {
				s, err := catalogValue(v)
				if err != nil {
					return nil, goerr.Wrap(err, "invalid catalog value",
						goerr.V(CollectionKey, name),
						goerr.V(FieldKey, field))
				}
				values[field] = s
			}
			entries = append(entries, usecase.SeedEntry{Collection: name, Values: values})
		}
	}
	return entries, nil
}

// catalogValue converts a decoded TOML value into its form text
func catalogValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case toml.LocalDate:
		return v.String(), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, err := catalogValue(item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	default:
		return "", goerr.Wrap(ErrInvalidConfig, "unsupported value type", goerr.V("value", v))
	}
}
