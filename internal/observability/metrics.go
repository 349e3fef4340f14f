package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for the analysis pipeline: how long
// each stage takes, how many diagnostics each rule produces, and how the
// embedding cache is performing.
type Metrics struct {
	// AnalysisDuration measures a full Analyse call, by verdict.
	// Labels: verdict (pass|pass-with-warnings|fail)
	AnalysisDuration *prometheus.HistogramVec

	// AnalysisCounter counts completed analyses by verdict.
	AnalysisCounter *prometheus.CounterVec

	// StageDuration measures one orchestrator stage.
	// Labels: stage (load|normalize|index|infer|rules|verdict)
	StageDuration *prometheus.HistogramVec

	// StageErrors counts stage failures by stage and error kind.
	StageErrors *prometheus.CounterVec

	// RuleDiagnostics counts diagnostics emitted per rule code.
	RuleDiagnostics *prometheus.CounterVec

	// RulePanics counts rules that panicked and were isolated by the engine.
	RulePanics *prometheus.CounterVec

	// EmbeddingCacheHits and EmbeddingCacheMisses track the embedding
	// cache effectiveness, summed over every Service reporting to them.
	EmbeddingCacheHits   prometheus.Counter
	EmbeddingCacheMisses prometheus.Counter

	// ToolsAnalyzed records the tool count of each analysis run.
	ToolsAnalyzed prometheus.Histogram
}

// NewMetrics registers and returns the metric set against the default
// Prometheus registry via promauto.
func NewMetrics() *Metrics {
	return &Metrics{
		AnalysisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcplint_analysis_duration_seconds",
				Help:    "Duration of a full analysis run, by verdict",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"verdict"},
		),
		AnalysisCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcplint_analyses_total",
				Help: "Total number of completed analyses by verdict",
			},
			[]string{"verdict"},
		),
		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcplint_stage_duration_seconds",
				Help:    "Duration of one orchestrator stage",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		StageErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcplint_stage_errors_total",
				Help: "Total number of stage failures by stage and error kind",
			},
			[]string{"stage", "kind"},
		),
		RuleDiagnostics: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcplint_rule_diagnostics_total",
				Help: "Total number of diagnostics emitted by rule code",
			},
			[]string{"code"},
		),
		RulePanics: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcplint_rule_panics_total",
				Help: "Total number of rules that panicked and were isolated",
			},
			[]string{"code"},
		),
		EmbeddingCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mcplint_embedding_cache_hits_total",
				Help: "Total number of embedding cache hits",
			},
		),
		EmbeddingCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mcplint_embedding_cache_misses_total",
				Help: "Total number of embedding cache misses",
			},
		),
		ToolsAnalyzed: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mcplint_tools_analyzed",
				Help:    "Number of tools seen per analysis run",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
			},
		),
	}
}
