package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/itemtracker/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func newTestBus(t *testing.T) *EventBus {
	t.Helper()
	bus := NewEventBus(logger.Discard())
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestPublishJSON_DeliversToSubscriber(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan map[string]string, 1)
	errCh, err := bus.Subscribe(ctx, "item.created", func(_ context.Context, msg *message.Message) error {
		var payload map[string]string
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		payload["event_type"] = msg.Metadata.Get(MetadataEventType)
		received <- payload
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	go func() {
		for range errCh {
		}
	}()

	if err := bus.PublishJSON(ctx, "item.created", map[string]string{"item_id": "abc"}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	select {
	case got := <-received:
		if got["item_id"] != "abc" {
			t.Errorf("unexpected payload: %v", got)
		}
		if got["event_type"] != "item.created" {
			t.Errorf("expected event_type metadata, got %q", got["event_type"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestSubscribe_PropagatesTraceContext(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := newTestBus(t)
	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	traceIDs := make(chan trace.TraceID, 1)
	if _, err := bus.Subscribe(subCtx, "item.updated", func(ctx context.Context, _ *message.Message) error {
		traceIDs <- trace.SpanContextFromContext(ctx).TraceID()
		return nil
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	pubCtx, span := otel.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	if err := bus.PublishJSON(pubCtx, "item.updated", struct{}{}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	select {
	case got := <-traceIDs:
		if want := span.SpanContext().TraceID(); got != want {
			t.Errorf("trace id: got %s, want %s", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestSubscribe_HandlerErrorIsReported(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	boom := errors.New("boom")
	calls := make(chan struct{}, 4)
	errCh, err := bus.Subscribe(ctx, "item.deleted", func(context.Context, *message.Message) error {
		calls <- struct{}{}
		return boom
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.PublishJSON(ctx, "item.deleted", struct{}{}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped boom, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handler error")
	}

	// The failed message is acked, not redelivered.
	time.Sleep(100 * time.Millisecond)
	if n := len(calls); n != 1 {
		t.Errorf("expected exactly 1 handler call, got %d", n)
	}
}

func TestPublish_NoSubscribersIsNotAnError(t *testing.T) {
	bus := newTestBus(t)
	if err := bus.PublishJSON(context.Background(), "nobody.listens", struct{}{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestPublishJSON_MarshalError(t *testing.T) {
	bus := newTestBus(t)
	if err := bus.PublishJSON(context.Background(), "item.created", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestClose_EndsSubscriptionsAndIsIdempotent(t *testing.T) {
	bus := NewEventBus(logger.Discard())

	errCh, err := bus.Subscribe(context.Background(), "item.created", func(context.Context, *message.Message) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case _, ok := <-errCh:
		if ok {
			t.Fatal("expected error channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error channel not closed after Close")
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
