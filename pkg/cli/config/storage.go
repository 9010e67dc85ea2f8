package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/service/storage"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the asset storage backend
type Storage struct {
	backend         string
	bucket          string
	publicURL       string
	credentialsFile string
	region          string
	endpoint        string
	pathStyle       bool
	accessKeyID     string
	secretAccessKey string `masq:"secret"`
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Asset storage backend [memory|gcs|s3]",
			Category:    "Storage",
			Value:       "memory",
			Sources:     cli.EnvVars("KOTTOS_STORAGE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Bucket name (gcs, s3)",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_STORAGE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-public-url",
			Usage:       "Base URL of returned asset URLs, e.g. a CDN in front of the bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_STORAGE_PUBLIC_URL"),
			Destination: &x.publicURL,
		},
		&cli.StringFlag{
			Name:        "gcs-credentials-file",
			Usage:       "Service account key file (default: application default credentials)",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_GCS_CREDENTIALS_FILE"),
			Destination: &x.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "s3-region",
			Usage:       "S3 region",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_S3_REGION", "AWS_REGION"),
			Destination: &x.region,
		},
		&cli.StringFlag{
			Name:        "s3-endpoint",
			Usage:       "S3 compatible endpoint, e.g. http://localhost:9000 for MinIO",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_S3_ENDPOINT"),
			Destination: &x.endpoint,
		},
		&cli.BoolFlag{
			Name:        "s3-path-style",
			Usage:       "Use path style bucket addressing",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_S3_PATH_STYLE"),
			Destination: &x.pathStyle,
		},
		&cli.StringFlag{
			Name:        "s3-access-key-id",
			Usage:       "Static access key ID (default: AWS credential chain)",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_S3_ACCESS_KEY_ID"),
			Destination: &x.accessKeyID,
		},
		&cli.StringFlag{
			Name:        "s3-secret-access-key",
			Usage:       "Static secret access key",
			Category:    "Storage",
			Sources:     cli.EnvVars("KOTTOS_S3_SECRET_ACCESS_KEY"),
			Destination: &x.secretAccessKey,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("bucket", x.bucket),
		slog.String("public_url", x.publicURL),
		slog.String("endpoint", x.endpoint),
		slog.Int("secret-access-key.len", len(x.secretAccessKey)),
	)
}

// Configure creates the asset storage. baseURL is the public address of this server and
// prefixes URLs of the memory backend, which the HTTP server serves itself. The returned
// function releases the backend client.
func (x *Storage) Configure(ctx context.Context, baseURL string) (interfaces.AssetStorage, func(), error) {
	nop := func() {}

	switch x.backend {
	case "memory", "":
		logging.Default().Info("Using in-memory asset storage (development mode)")
		return storage.NewMemory(strings.TrimRight(baseURL, "/") + "/assets"), nop, nil

	case "gcs":
		if x.bucket == "" {
			return nil, nop, goerr.Wrap(ErrMissingRequired, "storage-bucket is required for gcs", goerr.V(BackendKey, x.backend))
		}
		var opts []storage.GCSOption
		if x.credentialsFile != "" {
			opts = append(opts, storage.WithGCSCredentialsFile(x.credentialsFile))
		}
		if x.publicURL != "" {
			opts = append(opts, storage.WithGCSPublicURL(x.publicURL))
		}
		st, err := storage.NewGCS(ctx, x.bucket, opts...)
		if err != nil {
			return nil, nop, goerr.Wrap(err, "failed to configure GCS storage")
		}
		logging.Default().Info("Using GCS asset storage", "bucket", x.bucket)
		return st, func() {
			if err := st.Close(); err != nil {
				logging.Default().Error("failed to close GCS client", "error", err)
			}
		}, nil

	case "s3":
		if x.bucket == "" {
			return nil, nop, goerr.Wrap(ErrMissingRequired, "storage-bucket is required for s3", goerr.V(BackendKey, x.backend))
		}
		st, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:          x.bucket,
			Region:          x.region,
			Endpoint:        x.endpoint,
			PathStyle:       x.pathStyle,
			AccessKeyID:     x.accessKeyID,
			SecretAccessKey: x.secretAccessKey,
			PublicURL:       x.publicURL,
		})
		if err != nil {
			return nil, nop, goerr.Wrap(err, "failed to configure S3 storage")
		}
		logging.Default().Info("Using S3 asset storage", "bucket", x.bucket, "endpoint", x.endpoint)
		return st, nop, nil

	default:
		return nil, nop, goerr.Wrap(ErrInvalidBackend, "unknown storage backend", goerr.V(BackendKey, x.backend))
	}
}
