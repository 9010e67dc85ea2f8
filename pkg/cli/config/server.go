package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds CLI flags of the HTTP server and its background worker
type Server struct {
	addr            string
	baseURL         string
	rateLimit       float64
	metrics         bool
	sweepInterval   time.Duration
	uploadRetention time.Duration
	confirmationTTL time.Duration
}

func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Category:    "Server",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("KOTTOS_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL of this server, used for locally stored asset URLs",
			Category:    "Server",
			Sources:     cli.EnvVars("KOTTOS_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "API requests per second (0 disables the limit)",
			Category:    "Server",
			Value:       50,
			Sources:     cli.EnvVars("KOTTOS_RATE_LIMIT"),
			Destination: &x.rateLimit,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics at /metrics",
			Category:    "Server",
			Value:       true,
			Sources:     cli.EnvVars("KOTTOS_METRICS"),
			Destination: &x.metrics,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Interval of the upload task and confirmation sweep",
			Category:    "Server",
			Value:       time.Minute,
			Sources:     cli.EnvVars("KOTTOS_SWEEP_INTERVAL"),
			Destination: &x.sweepInterval,
		},
		&cli.DurationFlag{
			Name:        "upload-retention",
			Usage:       "How long finished upload tasks stay queryable",
			Category:    "Server",
			Value:       time.Hour,
			Sources:     cli.EnvVars("KOTTOS_UPLOAD_RETENTION"),
			Destination: &x.uploadRetention,
		},
		&cli.DurationFlag{
			Name:        "confirmation-ttl",
			Usage:       "Unanswered delete confirmations are cancelled after this period (0 keeps them)",
			Category:    "Server",
			Value:       15 * time.Minute,
			Sources:     cli.EnvVars("KOTTOS_CONFIRMATION_TTL"),
			Destination: &x.confirmationTTL,
		},
	}
}

func (x Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.addr),
		slog.String("base_url", x.baseURL),
		slog.Float64("rate_limit", x.rateLimit),
		slog.Bool("metrics", x.metrics),
		slog.Duration("sweep_interval", x.sweepInterval),
		slog.Duration("upload_retention", x.uploadRetention),
		slog.Duration("confirmation_ttl", x.confirmationTTL),
	)
}

func (x *Server) Addr() string                   { return x.addr }
func (x *Server) BaseURL() string                { return x.baseURL }
func (x *Server) RateLimit() float64             { return x.rateLimit }
func (x *Server) MetricsEnabled() bool           { return x.metrics }
func (x *Server) SweepInterval() time.Duration   { return x.sweepInterval }
func (x *Server) UploadRetention() time.Duration { return x.uploadRetention }
func (x *Server) ConfirmationTTL() time.Duration { return x.confirmationTTL }
