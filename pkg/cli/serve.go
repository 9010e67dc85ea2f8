package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/cli/config"
	httpctrl "github.com/secmon-lab/kottos/pkg/controller/http"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/service/worker"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var catalogCfg config.Catalog
	var storageCfg config.Storage
	var notifyCfg config.Notify
	var sentryCfg config.Sentry
	var serverCfg config.Server

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Configuration",
				"server", serverCfg,
				"catalog", catalogCfg,
				"storage", storageCfg,
				"notify", notifyCfg,
				"sentry", sentryCfg,
			)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			notifier, feed, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notification")
			}

			assets, closeStorage, err := storageCfg.Configure(ctx, serverCfg.BaseURL())
			if err != nil {
				return goerr.Wrap(err, "failed to configure storage")
			}
			defer closeStorage()

			entries, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}
			repo := memory.New()
			result := usecase.Seed(ctx, repo, entries)
			for _, issue := range result.Issues {
				logger.Warn("Catalog entry skipped",
					"collection", issue.Collection,
					"index", issue.Index,
					"field", issue.Field,
					"message", issue.Message,
				)
			}

			var m *metrics.Metrics
			if serverCfg.MetricsEnabled() {
				m = metrics.New()
			}

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithStorage(assets),
				usecase.WithMetrics(m),
			)

			httpOpts := []httpctrl.Options{
				httpctrl.WithFeed(feed),
				httpctrl.WithRateLimit(serverCfg.RateLimit()),
			}
			if m != nil {
				httpOpts = append(httpOpts, httpctrl.WithMetrics(m))
			}
			// Only the memory backend serves its own objects
			if h, ok := assets.(http.Handler); ok {
				httpOpts = append(httpOpts, httpctrl.WithAssets(h))
			}

			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			sweeper := worker.NewUploadSweeper(repo.UploadTasks(),
				serverCfg.SweepInterval(),
				serverCfg.UploadRetention(),
				worker.WithConfirmationExpiry(uc.Confirmation, serverCfg.ConfirmationTTL()),
			)
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start upload sweeper")
			}
			defer sweeper.Stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", serverCfg.Addr())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}
			logger.Info("Server shutdown completed")
			return nil
		},
	}
}
