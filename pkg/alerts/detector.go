// Package alerts detects workload anomalies over a week of shifts.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/google/uuid"
)

// Fixed thresholds
const (
	MinHoursThreshold         = 8.0
	OverloadWarningRatio      = 0.8
	EquityCriticalThreshold   = 60.0
	EquitySevereThreshold     = 40.0
	StoreImbalanceThreshold   = 0.3
	StoreImbalanceHighCeiling = 0.5
)

// Input is one evaluation window
type Input struct {
	Employees []models.Employee
	Stores    []models.Store
	Shifts    []models.Shift
	Settings  models.ValidationAdminSettings
	WeekStart time.Time
}

// WeekEnd returns the last day of the evaluation week
func (in Input) WeekEnd() time.Time {
	return hours.Day(in.WeekStart).AddDate(0, 0, 6)
}

// EmployeeWorkload is the per-employee view of the week
type EmployeeWorkload struct {
	EmployeeID      string  `json:"employee_id"`
	Name            string  `json:"name"`
	StoreID         string  `json:"store_id"`
	TotalHours      float64 `json:"total_hours"`
	ShiftCount      int     `json:"shift_count"`
	ConsecutiveDays int     `json:"consecutive_days"`
	ContractHours   float64 `json:"contract_hours"`
	Utilization     float64 `json:"utilization"`
}

// StoreWorkload is the per-store view of the week
type StoreWorkload struct {
	StoreID   string  `json:"store_id"`
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
	Deviation float64 `json:"deviation"`
}

// Report is everything one evaluation produces
type Report struct {
	EvaluationID string                 `json:"evaluation_id"`
	WeekStart    string                 `json:"week_start"`
	WeekEnd      string                 `json:"week_end"`
	Alerts       []models.WorkloadAlert `json:"alerts"`
	Summary      models.AlertSummary    `json:"summary"`
	Workloads    []EmployeeWorkload     `json:"workloads"`
	Stores       []StoreWorkload        `json:"stores"`
	EquityScore  float64                `json:"equity_score"`
}

// Detector evaluates workload rules
type Detector struct {
	Scorer EquityScorer
	Now    func() time.Time
}

// NewDetector creates a detector with the coefficient-of-variation scorer
func NewDetector() *Detector {
	return &Detector{Scorer: CoefficientOfVariation{}, Now: time.Now}
}

// Detect evaluates every rule over the week and returns the ranked alerts
func (d *Detector) Detect(in Input) Report {
	scorer := d.Scorer
	if scorer == nil {
		scorer = CoefficientOfVariation{}
	}
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	settings := in.Settings.WithDefaults()
	start, end := hours.Day(in.WeekStart), in.WeekEnd()

	report := Report{
		EvaluationID: uuid.NewString(),
		WeekStart:    start.Format(hours.DayLayout),
		WeekEnd:      end.Format(hours.DayLayout),
	}

	var weekShifts []models.Shift
	for _, s := range in.Shifts {
		if hours.InPeriod(s, start, end) {
			weekShifts = append(weekShifts, s)
		}
	}

	var active []models.Employee
	for _, e := range in.Employees {
		if e.IsActive {
			active = append(active, e)
		}
	}

	var alerts []models.WorkloadAlert
	totals := make([]float64, 0, len(active))
	for _, e := range active {
		w := workload(e, weekShifts, start, end)
		report.Workloads = append(report.Workloads, w)
		totals = append(totals, w.TotalHours)
		alerts = append(alerts, employeeAlerts(e, w.TotalHours, settings, now)...)
	}

	report.EquityScore = scorer.Score(totals)
	if len(active) > 2 && report.EquityScore < EquityCriticalThreshold {
		alerts = append(alerts, equityAlert(report.EquityScore, report.WeekStart, now))
	}

	var stores []models.Store
	for _, st := range in.Stores {
		if st.IsActive {
			stores = append(stores, st)
		}
	}
	storeLoads, storeAlerts := storeImbalance(stores, weekShifts, start, end, now)
	report.Stores = storeLoads
	alerts = append(alerts, storeAlerts...)

	if !settings.AlertsEnabled() {
		alerts = nil
	}

	SortAlerts(alerts)
	if alerts == nil {
		alerts = []models.WorkloadAlert{}
	}
	report.Alerts = alerts
	report.Summary = Summarize(alerts)
	return report
}

func workload(e models.Employee, weekShifts []models.Shift, start, end time.Time) EmployeeWorkload {
	var own []models.Shift
	for _, s := range weekShifts {
		if s.EmployeeID == e.ID {
			own = append(own, s)
		}
	}
	total := hours.WeeklyHours(e.ID, own, start, end)
	contract := e.WeeklyContract()
	return EmployeeWorkload{
		EmployeeID:      e.ID,
		Name:            e.Name(),
		StoreID:         e.StoreID,
		TotalHours:      total,
		ShiftCount:      len(own),
		ConsecutiveDays: hours.ConsecutiveWorkDays(own),
		ContractHours:   contract,
		Utilization:     hours.Round(total/contract*100, 1),
	}
}

func employeeAlerts(e models.Employee, total float64, settings models.ValidationAdminSettings, now time.Time) []models.WorkloadAlert {
	maxHours := settings.MaxHoursVariation
	warning := OverloadWarningRatio * maxHours

	var out []models.WorkloadAlert
	switch {
	case total > maxHours:
		out = append(out, models.WorkloadAlert{
			ID:             fmt.Sprintf("%s-%s", models.AlertOverloaded, e.ID),
			Type:           models.AlertOverloaded,
			Severity:       models.SeverityCritical,
			Title:          "Employee overloaded",
			Message:        fmt.Sprintf("%s works %sh this week, above the %sh limit", e.Name(), hours.Format(total), hours.Format(maxHours)),
			EmployeeID:     e.ID,
			EmployeeName:   e.Name(),
			CurrentValue:   total,
			ThresholdValue: maxHours,
			ActionRequired: true,
			Timestamp:      now,
		})
	case total > warning:
		out = append(out, models.WorkloadAlert{
			ID:             fmt.Sprintf("%s-%s", models.AlertOverloaded, e.ID),
			Type:           models.AlertOverloaded,
			Severity:       models.SeverityHigh,
			Title:          "Employee near hour limit",
			Message:        fmt.Sprintf("%s works %sh this week, close to the %sh limit", e.Name(), hours.Format(total), hours.Format(maxHours)),
			EmployeeID:     e.ID,
			EmployeeName:   e.Name(),
			CurrentValue:   total,
			ThresholdValue: warning,
			Timestamp:      now,
		})
	}

	if total > 0 && total < MinHoursThreshold {
		severity := models.SeverityMedium
		if total < MinHoursThreshold/2 {
			severity = models.SeverityHigh
		}
		out = append(out, models.WorkloadAlert{
			ID:             fmt.Sprintf("%s-%s", models.AlertUnderloaded, e.ID),
			Type:           models.AlertUnderloaded,
			Severity:       severity,
			Title:          "Employee underloaded",
			Message:        fmt.Sprintf("%s only works %sh this week", e.Name(), hours.Format(total)),
			EmployeeID:     e.ID,
			EmployeeName:   e.Name(),
			CurrentValue:   total,
			ThresholdValue: MinHoursThreshold,
			Timestamp:      now,
		})
	}
	return out
}

func equityAlert(score float64, weekStart string, now time.Time) models.WorkloadAlert {
	severity := models.SeverityHigh
	if score < EquitySevereThreshold {
		severity = models.SeverityCritical
	}
	return models.WorkloadAlert{
		ID:             fmt.Sprintf("%s-%s", models.AlertEquityCritical, weekStart),
		Type:           models.AlertEquityCritical,
		Severity:       severity,
		Title:          "Uneven hour distribution",
		Message:        fmt.Sprintf("Equity score is %s, below %s", hours.Format(score), hours.Format(EquityCriticalThreshold)),
		CurrentValue:   score,
		ThresholdValue: EquityCriticalThreshold,
		ActionRequired: true,
		Timestamp:      now,
	}
}

// storeImbalance flags stores staffed well below the cross-store average.
// Over-staffed stores are never flagged.
func storeImbalance(stores []models.Store, weekShifts []models.Shift, start, end, now time.Time) ([]StoreWorkload, []models.WorkloadAlert) {
	loads := make([]StoreWorkload, 0, len(stores))
	var sum float64
	for _, st := range stores {
		h := hours.StoreHours(st.ID, weekShifts, start, end)
		loads = append(loads, StoreWorkload{StoreID: st.ID, Name: st.Name, Hours: h})
		sum += h
	}
	if len(stores) <= 1 || sum == 0 {
		return loads, nil
	}

	avg := sum / float64(len(stores))
	var out []models.WorkloadAlert
	for i := range loads {
		deviation := (loads[i].Hours - avg) / avg
		loads[i].Deviation = deviation
		if deviation >= -StoreImbalanceThreshold {
			continue
		}
		severity := models.SeverityMedium
		if -deviation > StoreImbalanceHighCeiling {
			severity = models.SeverityHigh
		}
		out = append(out, models.WorkloadAlert{
			ID:             fmt.Sprintf("%s-%s", models.AlertStoreImbalance, loads[i].StoreID),
			Type:           models.AlertStoreImbalance,
			Severity:       severity,
			Title:          "Store under-staffed",
			Message:        fmt.Sprintf("%s has %sh scheduled, %s%% below the %sh average", loads[i].Name, hours.Format(loads[i].Hours), hours.Format(-deviation*100), hours.Format(avg)),
			StoreID:        loads[i].StoreID,
			StoreName:      loads[i].Name,
			CurrentValue:   loads[i].Hours,
			ThresholdValue: avg,
			Timestamp:      now,
		})
	}
	return loads, out
}

// SortAlerts orders alerts by severity, most severe first, then most recent first
func SortAlerts(alerts []models.WorkloadAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
}

// Summarize counts alerts by severity and type
func Summarize(alerts []models.WorkloadAlert) models.AlertSummary {
	summary := models.AlertSummary{
		Total:      len(alerts),
		BySeverity: make(map[models.Severity]int, len(models.Severities)),
		ByType:     make(map[models.AlertType]int, len(models.AlertTypes)),
	}
	for _, s := range models.Severities {
		summary.BySeverity[s] = 0
	}
	for _, t := range models.AlertTypes {
		summary.ByType[t] = 0
	}

	for _, a := range alerts {
		switch a.Severity {
		case models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
			summary.BySeverity[a.Severity]++
		}
		switch a.Type {
		case models.AlertOverloaded, models.AlertUnderloaded, models.AlertEquityCritical, models.AlertStoreImbalance:
			summary.ByType[a.Type]++
		}
	}
	return summary
}
