package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drover-dev/drover/pkg/delegate"
	"github.com/drover-dev/drover/pkg/dom"
)

func fixture(t *testing.T) (*delegate.Router, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	list := doc.Root().AppendChild(dom.Ul(dom.ID("list")))
	list.AppendChild(dom.Li(dom.Class("item"), dom.ID("row-1")))
	return delegate.NewRouter(), list
}

func dispatchClick(t *testing.T, root *dom.Node) {
	t.Helper()
	root.Children()[0].DispatchEvent(dom.NewEvent("click"))
}

func TestMetricsCountsDispatches(t *testing.T) {
	registry := prometheus.NewRegistry()
	router, list := fixture(t)
	router.Use(Metrics(WithRegistry(registry), WithNamespace("test")))

	if err := router.Register(list, "click", delegate.Class("item"), func(*delegate.Event) {}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	dispatchClick(t, list)
	dispatchClick(t, list)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() != "test_events_dispatched_total" {
			continue
		}
		found = true
		m := mf.GetMetric()
		if len(m) != 1 {
			t.Fatalf("metric series = %d, want 1", len(m))
		}
		if got := m[0].GetCounter().GetValue(); got != 2 {
			t.Errorf("dispatched = %v, want 2", got)
		}
		if got := m[0].GetLabel()[0].GetValue(); got != "click" {
			t.Errorf("event_type label = %q, want click", got)
		}
	}
	if !found {
		t.Fatal("events_dispatched_total not registered")
	}
}

func TestRecoverySwallowsPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router, list := fixture(t)
	router.Use(Recovery(logger))
	if err := router.Register(list, "click", delegate.Class("item"), func(*delegate.Event) {
		panic("boom")
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Must not panic through the dispatch turn.
	dispatchClick(t, list)

	if !strings.Contains(buf.String(), "handler panic") {
		t.Errorf("log = %q, want handler panic entry", buf.String())
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("log should include the panic value")
	}
}

func TestLoggingEmitsDebugEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router, list := fixture(t)
	router.Use(Logging(logger))
	if err := router.Register(list, "click", delegate.Class("item"), func(*delegate.Event) {}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	dispatchClick(t, list)

	out := buf.String()
	if !strings.Contains(out, "event dispatched") {
		t.Errorf("log = %q, want dispatch entry", out)
	}
	if !strings.Contains(out, "matched=row-1") {
		t.Errorf("log = %q, want matched node id", out)
	}
}

func TestTracingRunsHandler(t *testing.T) {
	router, list := fixture(t)
	router.Use(Tracing(WithTracerName("test")))

	fired := 0
	if err := router.Register(list, "click", delegate.Class("item"), func(*delegate.Event) {
		fired++
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	dispatchClick(t, list)

	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestTracingFilterSkips(t *testing.T) {
	router, list := fixture(t)
	router.Use(Tracing(WithEventFilter(func(*delegate.Event) bool { return false })))

	fired := 0
	if err := router.Register(list, "click", delegate.Class("item"), func(*delegate.Event) {
		fired++
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	dispatchClick(t, list)

	// Filtered events still reach the handler, just without a span.
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
