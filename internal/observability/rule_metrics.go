package observability

// RuleMetricsAdapter satisfies rules.MetricsRecorder without this package
// importing the rules package, keeping the dependency pointed one way:
// rules may depend on narrow interfaces, never on observability directly.
type RuleMetricsAdapter struct {
	metrics *Metrics
}

// NewRuleMetricsAdapter wraps metrics for use as a rules.MetricsRecorder.
func NewRuleMetricsAdapter(metrics *Metrics) *RuleMetricsAdapter {
	return &RuleMetricsAdapter{metrics: metrics}
}

func (a *RuleMetricsAdapter) RecordDiagnostic(code string) {
	a.metrics.RuleDiagnostics.WithLabelValues(code).Inc()
}

func (a *RuleMetricsAdapter) RecordPanic(code string) {
	a.metrics.RulePanics.WithLabelValues(code).Inc()
}
