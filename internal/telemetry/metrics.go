package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики приложения. Регистрируются в глобальном реестре и отдаются
// через /metrics.
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modulo_http_requests_total",
		Help: "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modulo_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	EntitiesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modulo_entities_created_total",
		Help: "Entities created by resource.",
	}, []string{"resource"})

	EntitiesSoftDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modulo_entities_soft_deleted_total",
		Help: "Entities soft-deleted by resource.",
	}, []string{"resource"})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modulo_events_publish_failures_total",
		Help: "Lifecycle events that could not be published.",
	})

	DatabaseUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modulo_database_up",
		Help: "1 if the last storage probe succeeded, 0 otherwise.",
	})

	LiveEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "modulo_live_entities",
		Help: "Live (not soft-deleted) entities by resource, as of the last probe.",
	}, []string{"resource"})
)
