package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/pizzaorder/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.NewWithWriter(os.Stderr, "error")
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage(map[string]string{"size": "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.UUID == "" {
		t.Error("expected message UUID")
	}
	if got := msg.Metadata.Get("content_type"); got != "application/json" {
		t.Errorf("content_type: got %q", got)
	}
	var decoded map[string]string
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded["size"] != "M" {
		t.Errorf("payload: got %v", decoded)
	}

	if _, err := NewJSONMessage(make(chan int)); err == nil {
		t.Fatal("expected error for unencodable payload")
	}
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := NewEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan context.Context, 1)
	payloads := make(chan []byte, 1)
	errCh, err := bus.Subscribe(ctx, "order.submitted", func(msgCtx context.Context, msg *message.Message) error {
		received <- msgCtx
		payloads <- msg.Payload
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	go func() {
		for range errCh {
		}
	}()

	pubCtx, span := otel.Tracer("test").Start(context.Background(), "publish")
	wantTraceID := span.SpanContext().TraceID()
	if err := bus.PublishJSON(pubCtx, "order.submitted", map[string]string{"size": "L"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	span.End()

	select {
	case msgCtx := <-received:
		if got := trace.SpanContextFromContext(msgCtx).TraceID(); got != wantTraceID {
			t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, got)
		}
		if got := string(<-payloads); got != `{"size":"L"}` {
			t.Errorf("payload: got %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestEventBus_HandlerFailureReported(t *testing.T) {
	bus := NewEventBus(nopLogger())
	bus.retryDelay = time.Millisecond
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	errCh, err := bus.Subscribe(ctx, "order.rejected", func(context.Context, *message.Message) error {
		calls.Add(1)
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.PublishJSON(context.Background(), "order.rejected", struct{}{}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected handler error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler error not reported")
	}
	if got := calls.Load(); got != maxRetries {
		t.Errorf("expected %d attempts, got %d", maxRetries, got)
	}
}

func TestEventBus_Closed(t *testing.T) {
	bus := NewEventBus(nopLogger())
	if err := bus.Ping(context.Background()); err != nil {
		t.Fatalf("ping open bus: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := bus.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("ping: expected ErrClosed, got %v", err)
	}
	if err := bus.PublishJSON(context.Background(), "order.submitted", struct{}{}); !errors.Is(err, ErrClosed) {
		t.Errorf("publish: expected ErrClosed, got %v", err)
	}
	if _, err := bus.Subscribe(context.Background(), "order.submitted", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("subscribe: expected ErrClosed, got %v", err)
	}
}
