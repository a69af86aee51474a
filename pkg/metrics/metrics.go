// Package metrics provides Prometheus metrics for the workload governance engine.
package metrics

import (
	"strconv"

	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ALERT METRICS
// =============================================================================

// AlertsEmitted counts alerts by type and severity.
var AlertsEmitted = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "workload",
	Name:      "alerts_emitted_total",
	Help:      "Workload alerts emitted by type and severity",
}, []string{"type", "severity"})

// EquityScore is the equity score of the last evaluated week.
var EquityScore = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "workload",
	Name:      "equity_score",
	Help:      "Equity score (100 - coefficient of variation) of the last evaluation",
})

// EvaluationDurationSeconds tracks time to evaluate a week.
var EvaluationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "workload",
	Name:      "evaluation_duration_seconds",
	Help:      "Time taken to detect alerts for one week",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// BALANCING METRICS
// =============================================================================

// SuggestionsApplied counts balancing suggestions by type and outcome.
var SuggestionsApplied = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "balancing",
	Name:      "suggestions_total",
	Help:      "Balancing suggestions processed by type and outcome",
}, []string{"type", "success"})

// HoursRedistributed sums hours moved by successful suggestions.
var HoursRedistributed = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "balancing",
	Name:      "hours_redistributed_total",
	Help:      "Hours moved between employees by successful suggestions",
})

// ShiftsModified counts shifts that received update instructions.
var ShiftsModified = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "balancing",
	Name:      "shifts_modified_total",
	Help:      "Shifts reassigned by successful suggestions",
})

// =============================================================================
// WORKFLOW METRICS
// =============================================================================

// Transitions counts workflow transitions per target status and outcome.
var Transitions = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "workflow",
	Name:      "transitions_total",
	Help:      "Shift validation transitions by target status and outcome",
}, []string{"target", "outcome"})

// =============================================================================
// Helper Functions
// =============================================================================

// ObserveAlerts records the alerts and equity score of one evaluation.
func ObserveAlerts(alerts []models.WorkloadAlert, equity float64) {
	for _, a := range alerts {
		AlertsEmitted.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
	}
	EquityScore.Set(equity)
}

// ObserveBalancing records the outcome of one suggestion.
func ObserveBalancing(s models.BalancingSuggestion, r models.BalancingResult) {
	SuggestionsApplied.WithLabelValues(string(s.Type), strconv.FormatBool(r.Success)).Inc()
	if r.Success {
		HoursRedistributed.Add(r.Summary.HoursRedistributed)
		ShiftsModified.Add(float64(r.Summary.ShiftsModified))
	}
}

// ObserveBatch records every item of a batch.
func ObserveBatch(b models.BatchResult) {
	for _, item := range b.Successful {
		ObserveBalancing(item.Suggestion, item.Result)
	}
	for _, item := range b.Failed {
		ObserveBalancing(item.Suggestion, item.Result)
	}
}

// ObserveTransitions records a bulk workflow transition.
func ObserveTransitions(r models.TransitionResult) {
	target := string(r.Summary.Target)
	Transitions.WithLabelValues(target, "success").Add(float64(r.Summary.Successful))
	Transitions.WithLabelValues(target, "failed").Add(float64(r.Summary.Failed))
}
