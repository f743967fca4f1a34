package appfx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx/fxtest"
)

func TestNewExporter(t *testing.T) {
	t.Run("stdout exporter", func(t *testing.T) {
		exp, err := newExporter("stdout")
		if err != nil {
			t.Fatalf("newExporter(stdout) error: %v", err)
		}
		if exp == nil {
			t.Fatal("expected non-nil exporter")
		}
	})

	t.Run("none disables tracing", func(t *testing.T) {
		exp, err := newExporter("none")
		if err != nil {
			t.Fatalf("newExporter(none) error: %v", err)
		}
		if exp != nil {
			t.Fatal("expected nil exporter")
		}
	})

	t.Run("unsupported exporter returns error", func(t *testing.T) {
		_, err := newExporter("invalid")
		if err == nil {
			t.Fatal("expected error for unsupported exporter")
		}
		if got := err.Error(); got != `unsupported CYPRUS_OTEL_EXPORTER: "invalid" (supported: none, stdout)` {
			t.Errorf("unexpected error message: %s", got)
		}
	})
}

func TestNewTracerProvider(t *testing.T) {
	t.Run("none is a noop provider", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		tp, err := NewTracerProvider(lc, testEnv{otelExp: "none"})
		if err != nil {
			t.Fatalf("NewTracerProvider error: %v", err)
		}

		_, span := tp.Tracer("test").Start(context.Background(), "op")
		if span.SpanContext().IsValid() {
			t.Error("expected an invalid span context from the noop provider")
		}
	})

	t.Run("stdout provider is shut down with the lifecycle", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		tp, err := NewTracerProvider(lc, testEnv{otelExp: "stdout"})
		if err != nil {
			t.Fatalf("NewTracerProvider error: %v", err)
		}
		if _, ok := tp.(*sdktrace.TracerProvider); !ok {
			t.Fatalf("expected sdk provider, got %T", tp)
		}

		lc.RequireStart().RequireStop()
	})
}

func TestNewResource(t *testing.T) {
	res := newResource("my-service")

	var found bool
	for _, attr := range res.Attributes() {
		if attr.Key == "service.name" && attr.Value.AsString() == "my-service" {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name attribute")
	}
}

func TestWithTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var inner trace.SpanContext
	handler := withTracing(tp, NewPropagator(), "svc")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		inner = trace.SpanContextFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].Name(); got != "GET /items/1" {
		t.Errorf("unexpected span name: %s", got)
	}
	if !inner.IsValid() {
		t.Error("expected the handler to see a valid span context")
	}
}

func TestNewPropagator(t *testing.T) {
	fields := NewPropagator().Fields()
	want := map[string]bool{"traceparent": false, "baggage": false}
	for _, f := range fields {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, ok := range want {
		if !ok {
			t.Errorf("expected propagator field %q", f)
		}
	}
}
