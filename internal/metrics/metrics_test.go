package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTransition(t *testing.T) {
	m := New()
	m.RecordTransition("approve", OutcomeOK)
	m.RecordTransition("approve", OutcomeOK)
	m.RecordTransition("approve", OutcomeConflict)

	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("approve", OutcomeOK)); got != 2 {
		t.Errorf("ok transitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("approve", OutcomeConflict)); got != 1 {
		t.Errorf("conflict transitions = %v, want 1", got)
	}
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics
	m.RecordTransition("approve", OutcomeOK)
	m.RecordFallback("ideas")
	m.ObserveHTTP("GET", "/live", "200", time.Millisecond)
	m.RecordPanic()
}

func TestRecordPanic(t *testing.T) {
	m := New()
	m.RecordPanic()

	if got := testutil.ToFloat64(m.HTTPPanics); got != 1 {
		t.Errorf("panics = %v, want 1", got)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordFallback("ideas")
	m.ObserveHTTP("GET", "/content/library", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`generation_fallbacks_total{kind="ideas"} 1`,
		`http_requests_total{code="200",method="GET",route="/content/library"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
