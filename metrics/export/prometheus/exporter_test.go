package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/passy"
)

type fakeSource struct {
	snapshot passy.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() passy.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                   { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: passy.MetricsSnapshot{
			Counters:   map[passy.MetricID]uint64{},
			Histograms: map[passy.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderCountersTiersAndHistogram(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: passy.MetricsSnapshot{
			Counters: map[passy.MetricID]uint64{
				passy.MetricGenerateTotal: 7,
				passy.MetricStrengthGood:  3,
			},
			Histograms: map[passy.MetricID][]uint64{
				passy.MetricGenerateLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	for _, want := range []string{
		"passy_generate_total 7",
		`passy_strength_total{tier="good"} 3`,
		`passy_strength_total{tier="weak"} 0`,
		`passy_generate_latency_seconds_bucket{le="0.00001"} 1`,
		`passy_generate_latency_seconds_bucket{le="+Inf"} 36`,
		"passy_generate_latency_seconds_count 36",
		"passy_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}

	if n := strings.Count(out, "# TYPE passy_strength_total counter"); n != 1 {
		t.Fatalf("expected one TYPE line for the strength family, got %d", n)
	}
}

func TestRenderSkipsHistogramWhenLatencyDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: passy.MetricsSnapshot{
			Counters:   map[passy.MetricID]uint64{passy.MetricGenerateTotal: 1},
			Histograms: map[passy.MetricID][]uint64{},
		},
	})

	if out := exp.Render(); strings.Contains(out, "passy_generate_latency_seconds") {
		t.Fatalf("expected no histogram, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: passy.MetricsSnapshot{
			Counters:   map[passy.MetricID]uint64{passy.MetricGenerateTotal: 1},
			Histograms: map[passy.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRenderFromLiveEngine(t *testing.T) {
	engine, err := passy.New().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer engine.Close()

	engine.GeneratePassword(t.Context(), passy.DefaultPolicy())

	out := NewExporter(engine).Render()
	if !strings.Contains(out, "passy_generate_total 1") {
		t.Fatalf("expected live generate counter, got:\n%s", out)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: passy.MetricsSnapshot{
			Counters: map[passy.MetricID]uint64{
				passy.MetricGenerateTotal:       1000,
				passy.MetricGenerateFastPath:    400,
				passy.MetricGenerateGeneralPath: 600,
				passy.MetricStrengthStrong:      900,
			},
			Histograms: map[passy.MetricID][]uint64{
				passy.MetricGenerateLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
	})

	b.ReportAllocs()
	for b.Loop() {
		_ = exp.Render()
	}
}
