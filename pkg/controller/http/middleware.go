package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
	"golang.org/x/time/rate"
)

// rateLimiter rejects requests beyond rps with 429. The burst equals rps, at least one.
func rateLimiter(rps float64) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logging.From(r.Context()).Warn("rate limit exceeded",
					"remote", r.RemoteAddr,
					"path", r.URL.Path,
				)
				errutil.WriteJSON(r.Context(), w, http.StatusTooManyRequests,
					map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// metricsRecorder counts requests by chi route pattern, so ids never become label values
func metricsRecorder(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			m.HTTPRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}
