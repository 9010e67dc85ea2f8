package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/cli/config"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var catalogCfg config.Catalog
	var collection string
	var output string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "collection",
			Usage:       "Collection to export, e.g. control-ratings",
			Required:    true,
			Destination: &collection,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file (- for stdout)",
			Value:       "-",
			Destination: &output,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Write one collection of the catalog as CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			entries, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			repo := memory.New()
			result := usecase.Seed(ctx, repo, entries)
			for _, issue := range result.Issues {
				logging.Default().Warn("Catalog entry skipped",
					"collection", issue.Collection,
					"index", issue.Index,
					"field", issue.Field,
					"message", issue.Message,
				)
			}

			editor, err := usecase.New(repo).Collections.Editor(types.CollectionName(collection))
			if err != nil {
				return err
			}

			var w io.Writer = c.Root().Writer
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer safe.Close(ctx, f)
				w = f
			}

			if err := editor.ExportCSV(ctx, w); err != nil {
				return goerr.Wrap(err, "failed to export collection")
			}
			return nil
		},
	}
}
