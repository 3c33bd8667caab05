package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names recorded by the REST transport.
const (
	MetricRESTRequests = "fluxc.rest.requests"
	MetricRESTDuration = "fluxc.rest.duration"
)

// RESTMetrics counts REST calls and records their latency.
type RESTMetrics struct {
	requests *Counter
	duration *Histogram
}

// NewRESTMetrics creates the REST instruments on meter
func NewRESTMetrics(meter metric.Meter) (*RESTMetrics, error) {
	requests, err := NewCounter(meter, MetricRESTRequests, "REST requests sent to WordPress.com and WooCommerce", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricRESTDuration,
		Description: "REST request duration",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &RESTMetrics{requests: requests, duration: duration}, nil
}

// Record records one finished request. errorType is empty on success.
func (m *RESTMetrics) Record(ctx context.Context, method, endpoint string, status int, errorType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrEndpoint.String(endpoint),
		AttrHTTPStatusCode.Int(status),
	}
	if errorType != "" {
		attrs = append(attrs, AttrErrorType.String(errorType))
	}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}
