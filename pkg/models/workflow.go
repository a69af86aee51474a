package models

// ValidationStatus is the approval state of a shift
type ValidationStatus string

const (
	StatusScheduled   ValidationStatus = "scheduled"
	StatusSubmitted   ValidationStatus = "submitted"
	StatusConfirmed   ValidationStatus = "confirmed"
	StatusRejected    ValidationStatus = "rejected"
	StatusLockedFinal ValidationStatus = "locked_final"
)

// ValidationStatuses lists every status in lifecycle order
var ValidationStatuses = []ValidationStatus{
	StatusScheduled, StatusSubmitted, StatusConfirmed, StatusRejected, StatusLockedFinal,
}

// Valid reports whether the status is a known state
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusSubmitted, StatusConfirmed, StatusRejected, StatusLockedFinal:
		return true
	}
	return false
}

// Role is the already-authorized role of the acting user
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleDirector Role = "director"
	RoleAdmin    Role = "admin"
)

// Level orders roles by privilege. Unknown roles have no privilege.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleDirector:
		return 3
	case RoleManager:
		return 2
	case RoleEmployee:
		return 1
	}
	return 0
}

// TransitionFailure explains why a shift could not move to the target state
type TransitionFailure struct {
	ShiftID string           `json:"shift_id"`
	From    ValidationStatus `json:"from"`
	Reason  string           `json:"reason"`
}

// TransitionSummary tallies a bulk transition
type TransitionSummary struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Target     ValidationStatus `json:"target"`
}

// TransitionResult is the outcome of a bulk workflow transition
type TransitionResult struct {
	Successful     []ShiftUpdate       `json:"successful"`
	ModifiedShifts []Shift             `json:"modified_shifts"`
	Failed         []TransitionFailure `json:"failed"`
	Summary        TransitionSummary   `json:"summary"`
}
