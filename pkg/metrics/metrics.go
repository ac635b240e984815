package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal - счётчик HTTP запросов
// Labels: service, method, path (шаблон маршрута), status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - время ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis (кеш каталога и сессии)
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka (только producer: события отзывов и регистраций)
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки отправки; reason: write, breaker_open
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "reason"},
)

// KafkaBreakerState - состояние circuit breaker перед Kafka (0 closed, 1 half-open, 2 open)
var KafkaBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "kafka_circuit_breaker_state",
		Help: "State of the Kafka producer circuit breaker",
	},
	[]string{"service", "topic"},
)

// =============================================================================
// Бизнес-метрики витрины
// =============================================================================

var ReviewsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_reviews_created_total",
		Help: "Total number of reviews created",
	},
)

// ReviewsRating - распределение оценок
var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "storefront_reviews_rating",
		Help:    "Distribution of review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

var AccountRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_registrations_total",
		Help: "Total number of account registrations",
	},
)

// AccountLogins - попытки входа, status: success, failed
var AccountLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"},
)

var CatalogSearches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_catalog_searches_total",
		Help: "Total number of catalog searches with a non-empty query",
	},
)

// SchedulerJobRuns - запуски cron задач, status: success, failed
var SchedulerJobRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_scheduler_job_runs_total",
		Help: "Total number of scheduled job runs",
	},
	[]string{"job", "status"},
)

var SchedulerJobDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "storefront_scheduler_job_duration_seconds",
		Help:    "Duration of scheduled jobs",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	},
	[]string{"job"},
)
