package models

import "time"

// AlertType classifies a workload anomaly
type AlertType string

const (
	AlertOverloaded     AlertType = "overloaded"
	AlertUnderloaded    AlertType = "underloaded"
	AlertEquityCritical AlertType = "equity_critical"
	AlertStoreImbalance AlertType = "store_imbalance"
)

// AlertTypes lists every alert type in a stable order
var AlertTypes = []AlertType{AlertOverloaded, AlertUnderloaded, AlertEquityCritical, AlertStoreImbalance}

// Severity of an alert
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from most to least severe
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank orders severities, higher is more severe. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// WorkloadAlert is a derived anomaly over one evaluation window. Never persisted.
type WorkloadAlert struct {
	ID             string    `json:"id"`
	Type           AlertType `json:"type"`
	Severity       Severity  `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	EmployeeID     string    `json:"employee_id,omitempty"`
	EmployeeName   string    `json:"employee_name,omitempty"`
	StoreID        string    `json:"store_id,omitempty"`
	StoreName      string    `json:"store_name,omitempty"`
	CurrentValue   float64   `json:"current_value"`
	ThresholdValue float64   `json:"threshold_value"`
	ActionRequired bool      `json:"action_required"`
	Timestamp      time.Time `json:"timestamp"`
}

// AlertSummary tallies alerts by severity and type
type AlertSummary struct {
	Total      int               `json:"total"`
	BySeverity map[Severity]int  `json:"by_severity"`
	ByType     map[AlertType]int `json:"by_type"`
}

// SuggestionType selects the remediation algorithm
type SuggestionType string

const (
	SuggestRedistribute SuggestionType = "redistribute"
	SuggestSwapShifts   SuggestionType = "swap_shifts"
	SuggestAdjustHours  SuggestionType = "adjust_hours"
)

// Impact is the expected effect of a suggestion
type Impact struct {
	HoursChange float64 `json:"hours_change"`
}

// ProposedChanges wraps the impact of a suggestion
type ProposedChanges struct {
	Impact Impact `json:"impact"`
}

// BalancingSuggestion proposes moving work between two employees
type BalancingSuggestion struct {
	ID               string          `json:"id,omitempty"`
	Type             SuggestionType  `json:"type"`
	SourceEmployeeID string          `json:"source_employee_id"`
	TargetEmployeeID string          `json:"target_employee_id"`
	ShiftID          string          `json:"shift_id,omitempty"`
	ProposedChanges  ProposedChanges `json:"proposed_changes"`
	Reason           string          `json:"reason,omitempty"`
}

// ConflictType tags a conflict found by the validator
type ConflictType string

const (
	ConflictAvailability ConflictType = "availability"
	ConflictOverlap      ConflictType = "overlap"
	ConflictCompetency   ConflictType = "competency"
	ConflictContract     ConflictType = "contract"
)

// Conflict describes a constraint violation between shifts
type Conflict struct {
	Type       ConflictType `json:"type"`
	EmployeeID string       `json:"employee_id,omitempty"`
	ShiftIDs   []string     `json:"shift_ids,omitempty"`
	Message    string       `json:"message"`
}

// ValidationResult is the outcome of checking a suggestion. Errors block, warnings don't.
type ValidationResult struct {
	IsValid   bool       `json:"is_valid"`
	Warnings  []string   `json:"warnings"`
	Errors    []string   `json:"errors"`
	Conflicts []Conflict `json:"conflicts"`
}

// BalancingSummary describes what a successful application changed
type BalancingSummary struct {
	ShiftsModified     int      `json:"shifts_modified"`
	EmployeesAffected  []string `json:"employees_affected"`
	HoursRedistributed float64  `json:"hours_redistributed"`
}

// BalancingResult is the outcome of applying one suggestion
type BalancingResult struct {
	Success        bool             `json:"success"`
	ModifiedShifts []Shift          `json:"modified_shifts"`
	Updates        []ShiftUpdate    `json:"updates"`
	Errors         []string         `json:"errors"`
	Summary        BalancingSummary `json:"summary"`
}

// BatchItem pairs a suggestion with its result
type BatchItem struct {
	Index      int                 `json:"index"`
	Suggestion BalancingSuggestion `json:"suggestion"`
	Result     BalancingResult     `json:"result"`
}

// BatchSummary aggregates a batch application
type BatchSummary struct {
	Total                   int     `json:"total"`
	Successful              int     `json:"successful"`
	Failed                  int     `json:"failed"`
	TotalShiftsModified     int     `json:"total_shifts_modified"`
	TotalHoursRedistributed float64 `json:"total_hours_redistributed"`
}

// BatchResult partitions a batch into successes and failures, in input order
type BatchResult struct {
	Successful []BatchItem   `json:"successful"`
	Failed     []BatchItem   `json:"failed"`
	Summary    BatchSummary  `json:"summary"`
	Updates    []ShiftUpdate `json:"updates"`
}
