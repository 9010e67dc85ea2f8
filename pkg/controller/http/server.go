package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/kottos/pkg/service/notify"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

// AssetPath is where locally stored assets are served
const AssetPath = "/assets"

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	metrics   *metrics.Metrics
	feed      *notify.Feed
	assets    http.Handler
	rateLimit float64
}

type Options func(*Server)

// WithMetrics enables request metrics and the /metrics endpoint
func WithMetrics(m *metrics.Metrics) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithFeed exposes recent notifications at /api/notifications
func WithFeed(feed *notify.Feed) Options {
	return func(s *Server) {
		s.feed = feed
	}
}

// WithAssets serves stored assets below AssetPath. Only the memory storage needs this.
func WithAssets(h http.Handler) Options {
	return func(s *Server) {
		s.assets = h
	}
}

// WithRateLimit limits /api requests per second. Zero disables the limit.
func WithRateLimit(rps float64) Options {
	return func(s *Server) {
		s.rateLimit = rps
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(metricsRecorder(s.metrics))
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(rateLimiter(s.rateLimit))
		}

		r.Get("/collections", listCollectionsHandler(uc.Collections))
		r.Route("/collections/{name}", func(r chi.Router) {
			r.Get("/export.csv", exportHandler(uc.Collections))
			r.Get("/records", listRecordsHandler(uc.Collections))
			r.Post("/records", createRecordHandler(uc.Collections))
			r.Get("/records/{id}", getRecordHandler(uc.Collections))
			r.Patch("/records/{id}", updateRecordHandler(uc.Collections))
			r.Delete("/records/{id}", deleteRecordHandler(uc.Confirmation))
		})

		r.Get("/confirmations", listConfirmationsHandler(uc.Confirmation))
		r.Post("/confirmations/{ticket}/confirm", confirmHandler(uc.Confirmation))
		r.Post("/confirmations/{ticket}/cancel", cancelHandler(uc.Confirmation))

		r.Post("/uploads", startUploadHandler(uc.Upload))
		r.Get("/uploads/{id}", getUploadHandler(uc.Upload))

		if s.feed != nil {
			r.Get("/notifications", notificationsHandler(s.feed))
		}
	})

	if s.assets != nil {
		r.Handle(AssetPath+"/*", http.StripPrefix(AssetPath, s.assets))
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
