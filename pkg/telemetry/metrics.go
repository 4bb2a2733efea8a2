// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/coinform/credserve/pkg/logger"
)

const (
	// MeterName is the default meter name for the application
	MeterName = "github.com/coinform/credserve"
)

// Metrics holds all application metrics
type Metrics struct {
	// Review request metrics
	ReviewRequestsTotal metric.Int64Counter
	ReviewDuration      metric.Float64Histogram
	ActiveReviews       metric.Int64UpDownCounter
	ReviewsByItemType   metric.Int64Counter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// External service call metrics (similarity, stance, worthiness, website
	// credibility - every call that crosses the circuit breaker boundary)
	ServiceCallsTotal   metric.Int64Counter
	ServiceCallDuration metric.Float64Histogram
	ServiceCallFailures metric.Int64Counter
	CircuitBreakerTrips metric.Int64Counter

	// Cache metrics
	CacheHitsTotal   metric.Int64Counter
	CacheMissesTotal metric.Int64Counter
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		var err error
		globalMetrics, err = initMetrics()
		if err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			// Return empty metrics to avoid nil pointer
			globalMetrics = &Metrics{}
		}
	})
	return globalMetrics
}

// initMetrics initializes all application metrics
func initMetrics() (*Metrics, error) {
	meter := otel.Meter(MeterName)
	m := &Metrics{}

	var err error

	// Review request metrics
	m.ReviewRequestsTotal, err = meter.Int64Counter(
		"credserve_review_requests_total",
		metric.WithDescription("Total number of credibility review requests accepted"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.ReviewDuration, err = meter.Float64Histogram(
		"credserve_review_duration_seconds",
		metric.WithDescription("Duration of a full credibility review, root to leaves"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	m.ActiveReviews, err = meter.Int64UpDownCounter(
		"credserve_active_reviews",
		metric.WithDescription("Number of review requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.ReviewsByItemType, err = meter.Int64Counter(
		"credserve_reviews_by_item_type_total",
		metric.WithDescription("Total number of reviews by reviewed item @type (Sentence, Article, Tweet, ...)"),
		metric.WithUnit("{review}"),
	)
	if err != nil {
		return nil, err
	}

	// HTTP metrics
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"credserve_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"credserve_http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	// External service metrics
	m.ServiceCallsTotal, err = meter.Int64Counter(
		"credserve_service_calls_total",
		metric.WithDescription("Total number of calls made to an external review service"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.ServiceCallDuration, err = meter.Float64Histogram(
		"credserve_service_call_duration_seconds",
		metric.WithDescription("Duration of a single external service call"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	m.ServiceCallFailures, err = meter.Int64Counter(
		"credserve_service_call_failures_total",
		metric.WithDescription("Total number of external service calls that failed or timed out"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.CircuitBreakerTrips, err = meter.Int64Counter(
		"credserve_circuit_breaker_trips_total",
		metric.WithDescription("Total number of times a service circuit breaker opened"),
		metric.WithUnit("{trip}"),
	)
	if err != nil {
		return nil, err
	}

	// Cache metrics
	m.CacheHitsTotal, err = meter.Int64Counter(
		"credserve_cache_hits_total",
		metric.WithDescription("Total number of domain-credibility cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheMissesTotal, err = meter.Int64Counter(
		"credserve_cache_misses_total",
		metric.WithDescription("Total number of domain-credibility cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Metrics initialized successfully")
	return m, nil
}

// RecordReviewStarted records that a review request has started
func (m *Metrics) RecordReviewStarted(ctx context.Context, itemType string) {
	if m.ReviewRequestsTotal == nil {
		return
	}
	m.ReviewRequestsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("item_type", itemType)),
	)
	if m.ActiveReviews != nil {
		m.ActiveReviews.Add(ctx, 1)
	}
}

// RecordReviewCompleted records that a review request has completed
func (m *Metrics) RecordReviewCompleted(ctx context.Context, itemType string, durationSeconds float64) {
	if m.ActiveReviews != nil {
		m.ActiveReviews.Add(ctx, -1)
	}
	if m.ReviewsByItemType != nil {
		m.ReviewsByItemType.Add(ctx, 1,
			metric.WithAttributes(attribute.String("item_type", itemType)),
		)
	}
	if m.ReviewDuration != nil {
		m.ReviewDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(attribute.String("item_type", itemType)),
		)
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if m.HTTPRequestsTotal != nil {
		m.HTTPRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.Int("status_code", statusCode),
			),
		)
	}
	if m.HTTPRequestDuration != nil {
		m.HTTPRequestDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
			),
		)
	}
}

// RecordServiceCall records a call to an external review service (similarity,
// stance, check-worthiness, or website credibility).
func (m *Metrics) RecordServiceCall(ctx context.Context, service string, success bool, durationSeconds float64) {
	if m.ServiceCallsTotal != nil {
		m.ServiceCallsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("service", service),
				attribute.Bool("success", success),
			),
		)
	}
	if m.ServiceCallDuration != nil {
		m.ServiceCallDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(attribute.String("service", service)),
		)
	}
	if !success && m.ServiceCallFailures != nil {
		m.ServiceCallFailures.Add(ctx, 1,
			metric.WithAttributes(attribute.String("service", service)),
		)
	}
}

// RecordCircuitBreakerTrip records that a service's circuit breaker opened
func (m *Metrics) RecordCircuitBreakerTrip(ctx context.Context, service string) {
	if m.CircuitBreakerTrips == nil {
		return
	}
	m.CircuitBreakerTrips.Add(ctx, 1,
		metric.WithAttributes(attribute.String("service", service)),
	)
}

// RecordCacheAccess records a domain-credibility cache hit or miss
func (m *Metrics) RecordCacheAccess(ctx context.Context, hit bool) {
	if hit {
		if m.CacheHitsTotal != nil {
			m.CacheHitsTotal.Add(ctx, 1)
		}
		return
	}
	if m.CacheMissesTotal != nil {
		m.CacheMissesTotal.Add(ctx, 1)
	}
}
