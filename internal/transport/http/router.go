package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vcgate/internal/blocklist"
	"vcgate/internal/device"
	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/middleware"
	"vcgate/pkg/httputil"
)

const requestTimeout = 30 * time.Second

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries the wired handlers and cross-cutting collaborators.
type RouterConfig struct {
	Credentials *CredentialHandler
	Devices     *device.Handler
	Blocklist   *blocklist.Handler

	Verifier middleware.CredentialVerifier
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// Issuance rate limit in requests per second per client; zero disables.
	IssueRateLimit float64

	HealthChecks map[string]HealthCheck
}

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.WithClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	if cfg.Metrics != nil {
		r.Use(latency(cfg.Metrics))
	}

	r.Get("/healthz", healthHandler(cfg.HealthChecks))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Credential endpoints take JSON bodies and no bearer credential.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		if cfg.IssueRateLimit > 0 {
			burst := int(cfg.IssueRateLimit * 2)
			if burst < 1 {
				burst = 1
			}
			r.Use(middleware.NewRateLimiter(cfg.IssueRateLimit, burst).Handler)
		}
		cfg.Credentials.Register(r)
	})

	// Device registry: every route requires a valid bearer credential.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCredential(cfg.Verifier, cfg.Metrics, cfg.Logger))
		cfg.Devices.Register(r)
	})

	// Blocklist stays unauthenticated to match the current design. Whether
	// this surface belongs behind a separate admin credential is unresolved.
	cfg.Blocklist.Register(r)

	return r
}

// latency observes per-route handler latency labeled by the chi route
// pattern, so path parameters do not explode the label space.
func latency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.EndpointLatency.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		})
	}
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result["status"] = "degraded"
				result[name] = err.Error()
			} else {
				result[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, result)
	}
}
