package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/cli/config"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var errCatalogIssues = goerr.New("catalog has invalid entries")

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Check that every catalog entry passes the collection rules",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			entries, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			result := usecase.Seed(ctx, memory.New(), entries)
			printSeedResult(c.Root().Writer, result)

			if result.HasIssues() {
				return goerr.Wrap(errCatalogIssues, "catalog validation failed", goerr.V("issues", len(result.Issues)))
			}
			return nil
		},
	}
}

func printSeedResult(w io.Writer, result *usecase.SeedResult) {
	ok := color.New(color.FgGreen)
	ng := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	for _, name := range usecase.CollectionNames() {
		if n := result.Created[name]; n > 0 {
			_, _ = ok.Fprint(w, "✔ ")
			_, _ = fmt.Fprintf(w, "%-22s %d\n", name, n)
		}
	}

	for _, issue := range result.Issues {
		_, _ = ng.Fprint(w, "✘ ")
		_, _ = fmt.Fprintf(w, "%s[%d]", issue.Collection, issue.Index)
		if issue.Field != "" {
			_, _ = dim.Fprintf(w, " %s", issue.Field)
		}
		_, _ = fmt.Fprintf(w, ": %s\n", issue.Message)
	}

	if result.HasIssues() {
		_, _ = ng.Fprintf(w, "%d invalid entries\n", len(result.Issues))
	} else {
		_, _ = ok.Fprintln(w, "catalog is valid")
	}
}
