package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/pizzaorder"

// Submission outcomes recorded by OrderMetrics.SubmissionFinished.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OrderMetrics records form activity. Exported by Prometheus as
// order_field_changes_total, order_submissions_total and
// order_submit_duration_seconds.
type OrderMetrics struct {
	fieldChanges metric.Int64Counter
	submissions  metric.Int64Counter
	duration     metric.Float64Histogram
}

// NewOrderMetrics registers the order instruments on mp. A nil mp uses the
// global provider installed by Setup.
func NewOrderMetrics(mp metric.MeterProvider) (*OrderMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	fieldChanges, err := meter.Int64Counter("order_field_changes",
		metric.WithDescription("Form field change events, by field."))
	if err != nil {
		return nil, fmt.Errorf("field changes counter: %w", err)
	}
	submissions, err := meter.Int64Counter("order_submissions",
		metric.WithDescription("Completed order submissions, by outcome."))
	if err != nil {
		return nil, fmt.Errorf("submissions counter: %w", err)
	}
	duration, err := meter.Float64Histogram("order_submit_duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent waiting for the order endpoint."))
	if err != nil {
		return nil, fmt.Errorf("submit duration histogram: %w", err)
	}

	return &OrderMetrics{
		fieldChanges: fieldChanges,
		submissions:  submissions,
		duration:     duration,
	}, nil
}

// FieldChanged counts one change event for field.
func (m *OrderMetrics) FieldChanged(ctx context.Context, field string) {
	if m == nil {
		return
	}
	m.fieldChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

// SubmissionFinished counts a submission with its outcome and latency.
func (m *OrderMetrics) SubmissionFinished(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.submissions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
