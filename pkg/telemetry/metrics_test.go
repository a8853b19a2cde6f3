package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, key, value string) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", m.Name, m.Data)
	}
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			return dp.Value
		}
	}
	return 0
}

func TestOrderMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewOrderMetrics(mp)
	if err != nil {
		t.Fatalf("NewOrderMetrics: %v", err)
	}

	ctx := context.Background()
	m.FieldChanged(ctx, "fullName")
	m.FieldChanged(ctx, "fullName")
	m.FieldChanged(ctx, "size")
	m.SubmissionFinished(ctx, OutcomeSuccess, 120*time.Millisecond)
	m.SubmissionFinished(ctx, OutcomeFailure, 80*time.Millisecond)
	m.SubmissionFinished(ctx, OutcomeFailure, 90*time.Millisecond)

	got := collect(t, reader)

	changes, ok := got["order_field_changes"]
	if !ok {
		t.Fatal("order_field_changes not recorded")
	}
	if n := sumFor(t, changes, "field", "fullName"); n != 2 {
		t.Errorf("fullName changes: got %d, want 2", n)
	}
	if n := sumFor(t, changes, "field", "size"); n != 1 {
		t.Errorf("size changes: got %d, want 1", n)
	}

	subs, ok := got["order_submissions"]
	if !ok {
		t.Fatal("order_submissions not recorded")
	}
	if n := sumFor(t, subs, "outcome", OutcomeSuccess); n != 1 {
		t.Errorf("success: got %d, want 1", n)
	}
	if n := sumFor(t, subs, "outcome", OutcomeFailure); n != 2 {
		t.Errorf("failure: got %d, want 2", n)
	}

	if _, ok := got["order_submit_duration"]; !ok {
		t.Error("order_submit_duration not recorded")
	}
}

func TestOrderMetrics_NilSafe(t *testing.T) {
	var m *OrderMetrics
	m.FieldChanged(context.Background(), "size")
	m.SubmissionFinished(context.Background(), OutcomeSuccess, time.Second)
}
