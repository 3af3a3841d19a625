package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CredentialsIssued     prometheus.Counter
	PresentationsIssued   prometheus.Counter
	Verifications         *prometheus.CounterVec // result: ok|cryptographic|malformed_claims
	AuthFailures          prometheus.Counter
	VerifyCacheHits       prometheus.Counter
	DevicesRegistered     prometheus.Counter
	BlocklistEntries      prometheus.Gauge
	IdentityExchangeError prometheus.Counter
	EndpointLatency       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the given registerer.
// Passing a fresh registry keeps tests isolated from the global default.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CredentialsIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_credentials_issued_total",
			Help: "Total number of verifiable credentials issued",
		}),
		PresentationsIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_presentations_issued_total",
			Help: "Total number of verifiable presentations issued",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vcgate_verifications_total",
			Help: "Credential verification outcomes by result kind",
		}, []string{"result"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_auth_failures_total",
			Help: "Requests rejected by the credential authentication middleware",
		}),
		VerifyCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_verify_cache_hits_total",
			Help: "Verifications served from the token-hash cache",
		}),
		DevicesRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_devices_registered_total",
			Help: "Total number of IoT devices registered",
		}),
		BlocklistEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vcgate_blocklist_entries",
			Help: "Current number of blocklist entries",
		}),
		IdentityExchangeError: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcgate_identity_exchange_errors_total",
			Help: "Failed identity provider token exchanges",
		}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vcgate_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
