// Package observe provides application-wide observability primitives:
// OpenTelemetry metrics, tracing, structured logging helpers, and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported
// via a Prometheus bridge (see [InitProvider]) so they can be scraped from
// the standard /metrics endpoint. A package-level default [Metrics] instance
// ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all service metrics.
const meterName = "github.com/Kitan-Dara06/n-atlas-scenapps"

// Metrics holds all OpenTelemetry metric instruments for the service.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// ExtractionDuration tracks audio extraction latency.
	ExtractionDuration metric.Float64Histogram

	// TranscriptionDuration tracks ASR transcription latency.
	TranscriptionDuration metric.Float64Histogram

	// DetectionDuration tracks mention detection latency.
	DetectionDuration metric.Float64Histogram

	// SearchDuration tracks transcript search latency.
	SearchDuration metric.Float64Histogram

	// --- Counters ---

	// TranscriptionRequests counts ASR provider calls. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("status", ...)
	TranscriptionRequests metric.Int64Counter

	// MentionsDetected counts detected mentions across all videos.
	MentionsDetected metric.Int64Counter

	// SearchQueries counts /search requests by result presence. Use with
	// attribute.String("outcome", "hit"|"miss").
	SearchQueries metric.Int64Counter

	// --- Gauges ---

	// ActiveJobs tracks the number of in-flight /process-video requests.
	ActiveJobs metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with
	// attributes: attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). The upper
// range accommodates whole-video transcription, which can run for minutes.
var latencyBuckets = []float64{
	0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ExtractionDuration, err = m.Float64Histogram("natlas.extraction.duration",
		metric.WithDescription("Latency of audio extraction from video."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranscriptionDuration, err = m.Float64Histogram("natlas.transcription.duration",
		metric.WithDescription("Latency of ASR transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DetectionDuration, err = m.Float64Histogram("natlas.detection.duration",
		metric.WithDescription("Latency of mention detection."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SearchDuration, err = m.Float64Histogram("natlas.search.duration",
		metric.WithDescription("Latency of transcript search."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.TranscriptionRequests, err = m.Int64Counter("natlas.transcription.requests",
		metric.WithDescription("Total ASR provider requests by provider and status."),
	); err != nil {
		return nil, err
	}
	if met.MentionsDetected, err = m.Int64Counter("natlas.mentions.detected",
		metric.WithDescription("Total participant mentions detected."),
	); err != nil {
		return nil, err
	}
	if met.SearchQueries, err = m.Int64Counter("natlas.search.queries",
		metric.WithDescription("Total search queries by outcome."),
	); err != nil {
		return nil, err
	}

	if met.ActiveJobs, err = m.Int64UpDownCounter("natlas.active_jobs",
		metric.WithDescription("Number of in-flight video processing requests."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("natlas.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordTranscription records a transcription request counter increment with
// the standard attribute set.
func (m *Metrics) RecordTranscription(ctx context.Context, provider, status string) {
	m.TranscriptionRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("status", status),
		),
	)
}

// RecordSearch records a search query counter increment with the outcome
// attribute ("hit" when at least one result was returned, "miss" otherwise).
func (m *Metrics) RecordSearch(ctx context.Context, resultCount int) {
	outcome := "miss"
	if resultCount > 0 {
		outcome = "hit"
	}
	m.SearchQueries.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
