package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the crypto registry service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_registry_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_registry_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set/delete/exists, result: hit/miss/success/error
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_external_api_requests_total",
			Help: "Total number of external API requests",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_registry_external_api_request_duration_seconds",
			Help:    "External API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"service", "endpoint"},
	)

	ExternalAPIThrottleWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_registry_external_api_throttle_wait_seconds",
			Help:    "Time spent waiting on the client-side rate limiter before calling the provider",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"service"},
	)

	// Business Metrics
	PriceLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_price_lookups_total",
			Help: "Total number of price lookups by currency and result status",
		},
		[]string{"currency", "status"}, // status: fresh/stale/empty/error
	)

	CatalogRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_catalog_refreshes_total",
			Help: "Total number of coin catalog downloads from the provider",
		},
		[]string{"result"}, // result: success/error
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_registry_catalog_coins",
			Help: "Number of coins in the last downloaded catalog",
		},
	)

	RegistryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_registry_operations_total",
			Help: "Total number of registry write operations",
		},
		[]string{"operation", "result"}, // operation: create/update/delete
	)

	// Rate Limiting Metrics
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_registry_rate_limit_decisions_total",
			Help: "Total number of inbound rate limit decisions",
		},
		[]string{"result"}, // allowed/limited
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_registry_application_info",
			Help: "Application information",
		},
		[]string{"version", "build_time", "go_version"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordCacheOperation records cache operation metrics
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordExternalAPICall records external API call metrics
func RecordExternalAPICall(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

// RecordThrottleWait records time spent waiting on the client-side limiter
func RecordThrottleWait(service string, seconds float64) {
	ExternalAPIThrottleWait.WithLabelValues(service).Observe(seconds)
}

// RecordPriceLookup records the outcome of a price lookup
func RecordPriceLookup(currency, status string) {
	PriceLookupsTotal.WithLabelValues(currency, status).Inc()
}

// RecordCatalogRefresh records a catalog download
func RecordCatalogRefresh(success bool, coins int) {
	result := "error"
	if success {
		result = "success"
		CatalogSize.Set(float64(coins))
	}
	CatalogRefreshesTotal.WithLabelValues(result).Inc()
}

// RecordRegistryOperation records a registry write
func RecordRegistryOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	RegistryOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordRateLimitResult records whether an inbound request passed the limiter
func RecordRateLimitResult(allowed bool) {
	result := "limited"
	if allowed {
		result = "allowed"
	}
	RateLimitDecisionsTotal.WithLabelValues(result).Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, buildTime, goVersion string) {
	ApplicationInfo.WithLabelValues(version, buildTime, goVersion).Set(1)
}
