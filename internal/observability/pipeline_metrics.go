package observability

import "time"

// OrchestratorMetricsAdapter satisfies orchestrator.Metrics without this
// package importing the orchestrator package, the same one-way dependency
// RuleMetricsAdapter keeps for the rules package.
type OrchestratorMetricsAdapter struct {
	metrics *Metrics
}

// NewOrchestratorMetricsAdapter wraps metrics for use as an
// orchestrator.Metrics.
func NewOrchestratorMetricsAdapter(metrics *Metrics) *OrchestratorMetricsAdapter {
	return &OrchestratorMetricsAdapter{metrics: metrics}
}

func (a *OrchestratorMetricsAdapter) RecordStage(stage string, duration time.Duration) {
	a.metrics.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (a *OrchestratorMetricsAdapter) RecordStageError(stage, kind string) {
	a.metrics.StageErrors.WithLabelValues(stage, kind).Inc()
}

func (a *OrchestratorMetricsAdapter) RecordAnalysis(verdict string, duration time.Duration) {
	a.metrics.AnalysisDuration.WithLabelValues(verdict).Observe(duration.Seconds())
	a.metrics.AnalysisCounter.WithLabelValues(verdict).Inc()
}

func (a *OrchestratorMetricsAdapter) RecordToolsAnalyzed(n int) {
	a.metrics.ToolsAnalyzed.Observe(float64(n))
}

// EmbeddingCacheMetricsAdapter satisfies embeddings.CacheMetrics the same
// way, keeping this package the only one that knows about Prometheus.
type EmbeddingCacheMetricsAdapter struct {
	metrics *Metrics
}

// NewEmbeddingCacheMetricsAdapter wraps metrics for use as an
// embeddings.CacheMetrics.
func NewEmbeddingCacheMetricsAdapter(metrics *Metrics) *EmbeddingCacheMetricsAdapter {
	return &EmbeddingCacheMetricsAdapter{metrics: metrics}
}

func (a *EmbeddingCacheMetricsAdapter) RecordCacheHit() { a.metrics.EmbeddingCacheHits.Inc() }

func (a *EmbeddingCacheMetricsAdapter) RecordCacheMiss() { a.metrics.EmbeddingCacheMisses.Inc() }
