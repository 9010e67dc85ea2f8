package storage

import (
	"context"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/utils/safe"
	"google.golang.org/api/option"
)

// DefaultGCSBaseURL is the public endpoint of Cloud Storage objects
const DefaultGCSBaseURL = "https://storage.googleapis.com"

// GCS stores assets in a Cloud Storage bucket
type GCS struct {
	client    *gcs.Client
	bucket    string
	publicURL string
}

var _ interfaces.AssetStorage = &GCS{}

// GCSOption configures a GCS storage
type GCSOption func(*gcsConfig)

type gcsConfig struct {
	clientOpts []option.ClientOption
	publicURL  string
}

// WithGCSCredentialsFile authenticates with a service account key file instead of ADC
func WithGCSCredentialsFile(path string) GCSOption {
	return func(c *gcsConfig) {
		c.clientOpts = append(c.clientOpts, option.WithCredentialsFile(path))
	}
}

// WithGCSClientOptions passes raw client options, e.g. an endpoint for an emulator
func WithGCSClientOptions(opts ...option.ClientOption) GCSOption {
	return func(c *gcsConfig) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithGCSPublicURL overrides the base of returned URLs, e.g. a CDN in front of the bucket
func WithGCSPublicURL(base string) GCSOption {
	return func(c *gcsConfig) {
		c.publicURL = base
	}
}

// NewGCS creates a Cloud Storage backed asset storage
func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("GCS bucket is required")
	}

	cfg := &gcsConfig{publicURL: DefaultGCSBaseURL + "/" + bucket}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := gcs.NewClient(ctx, cfg.clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client", goerr.V("bucket", bucket))
	}

	return &GCS{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(cfg.publicURL, "/"),
	}, nil
}

func (s *GCS) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write GCS object",
			goerr.V("bucket", s.bucket),
			goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize GCS object",
			goerr.V("bucket", s.bucket),
			goerr.V("key", key))
	}

	return objectURL(s.publicURL, key), nil
}

// Close releases the underlying client
func (s *GCS) Close() error {
	return s.client.Close()
}

func objectURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + strings.Join(segments, "/")
}
