package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newIsolatedMetrics builds a *Metrics with unregistered vectors so tests
// can assert on counts without colliding with NewMetrics's promauto
// registration against the global default registry.
func newIsolatedMetrics() *Metrics {
	return &Metrics{
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "t_analysis_duration_seconds", Help: "t"}, []string{"verdict"}),
		AnalysisCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "t_analyses_total", Help: "t"}, []string{"verdict"}),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "t_stage_duration_seconds", Help: "t"}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "t_stage_errors_total", Help: "t"}, []string{"stage", "kind"}),
		EmbeddingCacheHits:   prometheus.NewCounter(prometheus.CounterOpts{Name: "t_cache_hits_total", Help: "t"}),
		EmbeddingCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{Name: "t_cache_misses_total", Help: "t"}),
		ToolsAnalyzed:        prometheus.NewHistogram(prometheus.HistogramOpts{Name: "t_tools_analyzed", Help: "t"}),
	}
}

func TestOrchestratorMetricsAdapter_RecordsStageAndAnalysis(t *testing.T) {
	m := newIsolatedMetrics()
	a := NewOrchestratorMetricsAdapter(m)

	a.RecordStage("normalize", 5*time.Millisecond)
	a.RecordStageError("load", "transport")
	a.RecordAnalysis("fail", 20*time.Millisecond)
	a.RecordToolsAnalyzed(3)

	if got := testutil.ToFloat64(m.StageErrors.WithLabelValues("load", "transport")); got != 1 {
		t.Errorf("StageErrors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AnalysisCounter.WithLabelValues("fail")); got != 1 {
		t.Errorf("AnalysisCounter = %v, want 1", got)
	}
	if count := testutil.CollectAndCount(m.StageDuration); count != 1 {
		t.Errorf("StageDuration label count = %d, want 1", count)
	}
	if count := testutil.CollectAndCount(m.ToolsAnalyzed); count != 1 {
		t.Errorf("ToolsAnalyzed sample count = %d, want 1", count)
	}
}

func TestEmbeddingCacheMetricsAdapter_RecordsHitsAndMisses(t *testing.T) {
	m := newIsolatedMetrics()
	a := NewEmbeddingCacheMetricsAdapter(m)

	a.RecordCacheMiss()
	a.RecordCacheHit()
	a.RecordCacheHit()

	if got := testutil.ToFloat64(m.EmbeddingCacheHits); got != 2 {
		t.Errorf("EmbeddingCacheHits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.EmbeddingCacheMisses); got != 1 {
		t.Errorf("EmbeddingCacheMisses = %v, want 1", got)
	}
}
