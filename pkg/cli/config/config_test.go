package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/kottos/pkg/cli/config"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/service/storage"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
)

func TestParseCatalog(t *testing.T) {
	entries, err := config.ParseCatalog([]byte(`
[[workflows]]
name = "Tax Compliance Audit"
approvers = ["1", 3]
dueDate = 2024-03-25

[[mystery]]
name = "x"

[[control-categories]]
name = "Corrective"

[[control-categories]]
name = "Detective"
`))
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(4)

	// registration order first, unknown collections last
	gt.Value(t, entries[0].Collection).Equal(usecase.ControlCategories)
	gt.Value(t, entries[0].Values["name"]).Equal("Corrective")
	gt.Value(t, entries[1].Values["name"]).Equal("Detective")
	gt.Value(t, entries[2].Collection).Equal(usecase.Workflows)
	gt.Value(t, entries[2].Values["approvers"]).Equal("1,3")
	gt.Value(t, entries[2].Values["dueDate"]).Equal("2024-03-25")
	gt.Value(t, entries[3].Collection).Equal(types.CollectionName("mystery"))
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	t.Run("not a table array", func(t *testing.T) {
		_, err := config.ParseCatalog([]byte(`name = "x"`))
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("nested table", func(t *testing.T) {
		_, err := config.ParseCatalog([]byte(`
[[users]]
name = "John"
[users.meta]
team = "a"
`))
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestCatalogValue(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "Daily", "Daily"},
		{"integer", int64(5), "5"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"date", toml.LocalDate{Year: 2024, Month: 3, Day: 15}, "2024-03-15"},
		{"list", []any{"1", int64(2)}, "1,2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := config.CatalogValue(tc.input)
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tc.want)
		})
	}
}

func TestDefaultCatalogSeedsCleanly(t *testing.T) {
	ctx := context.Background()
	var cfg config.Catalog

	entries, err := cfg.Load()
	gt.NoError(t, err).Required()

	repo := memory.New()
	result := usecase.Seed(ctx, repo, entries)
	for _, issue := range result.Issues {
		t.Errorf("unexpected issue: %+v", issue)
	}

	gt.Value(t, repo.ControlCategories().Len(ctx)).Equal(3)
	gt.Value(t, repo.ControlFrequencies().Len(ctx)).Equal(5)
	gt.Value(t, repo.ControlRatings().Len(ctx)).Equal(5)
	gt.Value(t, repo.ObservationRatings().Len(ctx)).Equal(5)
	gt.Value(t, repo.InherentRiskLevels().Len(ctx)).Equal(8)
	gt.Value(t, repo.ScoreBands().Len(ctx)).Equal(5)
	gt.Value(t, repo.RiskCategories().Len(ctx)).Equal(3)
	gt.Value(t, repo.Entities().Len(ctx)).Equal(3)
	gt.Value(t, repo.Users().Len(ctx)).Equal(3)
	gt.Value(t, repo.Roles().Len(ctx)).Equal(6)
	gt.Value(t, repo.Workflows().Len(ctx)).Equal(5)

	rating, err := repo.ControlRatings().Get(ctx, "2")
	gt.NoError(t, err).Required()
	gt.Value(t, rating.Name).Equal("Ineffective")
	gt.Value(t, rating.Color).Equal("#ff0000")
}

func TestCatalogLoad(t *testing.T) {
	t.Run("empty skips the default catalog", func(t *testing.T) {
		var cfg config.Catalog
		cfg.SetForTest("", true)
		entries, err := cfg.Load()
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[[control-frequencies]]\nname = \"Hourly\"\n"), 0600)).Required()

		var cfg config.Catalog
		cfg.SetForTest(path, false)
		entries, err := cfg.Load()
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Values["name"]).Equal("Hourly")
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg config.Catalog
		cfg.SetForTest(filepath.Join(t.TempDir(), "none.toml"), false)
		_, err := cfg.Load()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}

func TestLoggerConfigure(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kottos.log")
		var cfg config.Logger
		cfg.SetForTest("debug", "json", path)

		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("unknown level", func(t *testing.T) {
		var cfg config.Logger
		cfg.SetForTest("verbose", "console", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown format", func(t *testing.T) {
		var cfg config.Logger
		cfg.SetForTest("info", "xml", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestStorageConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		var cfg config.Storage
		cfg.SetForTest("memory", "")
		st, closer, err := cfg.Configure(ctx, "http://localhost:8080/")
		gt.NoError(t, err).Required()
		defer closer()

		mem, ok := st.(*storage.Memory)
		gt.Bool(t, ok).True()
		url, err := mem.Put(ctx, "images/a.png", "image/png", []byte("x"))
		gt.NoError(t, err).Required()
		gt.Value(t, url).Equal("http://localhost:8080/assets/images/a.png")
	})

	t.Run("bucket required", func(t *testing.T) {
		for _, backend := range []string{"gcs", "s3"} {
			var cfg config.Storage
			cfg.SetForTest(backend, "")
			_, _, err := cfg.Configure(ctx, "")
			gt.Error(t, err).Is(config.ErrMissingRequired)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		var cfg config.Storage
		cfg.SetForTest("ftp", "bucket")
		_, _, err := cfg.Configure(ctx, "")
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestNotifyConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("log and feed", func(t *testing.T) {
		var cfg config.Notify
		notifier, feed, err := cfg.Configure()
		gt.NoError(t, err).Required()

		notifier.Notify(ctx, model.NewSuccess("User created successfully"))
		recent := feed.Recent(10)
		gt.Array(t, recent).Length(1)
		gt.Value(t, recent[0].Message).Equal("User created successfully")
	})

	t.Run("slack needs token and channel", func(t *testing.T) {
		var cfg config.Notify
		cfg.SetForTest("xoxb-test", "")
		_, _, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrMissingRequired)
	})
}
