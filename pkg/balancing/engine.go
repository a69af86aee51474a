// Package balancing turns balancing suggestions into shift update instructions.
package balancing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arnavshah/workload-governance-go/internal/snapshot"
	"github.com/arnavshah/workload-governance-go/pkg/conflicts"
	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
)

// Tolerances used when picking shifts
const (
	RedistributeTolerance = 1.0
	SwapMaxDifference     = 2.0
)

// Engine applies suggestions against an immutable snapshot. It never mutates
// shifts itself; results carry the update instructions for the caller.
type Engine struct {
	Snapshot *snapshot.Snapshot
	// Checker overrides the snapshot validator when set
	Checker conflicts.Checker
	Now     func() time.Time
}

// NewEngine creates an engine over the snapshot
func NewEngine(snap *snapshot.Snapshot) *Engine {
	return &Engine{Snapshot: snap, Now: time.Now}
}

// Apply runs one suggestion. Unexpected panics become failure results.
func (e *Engine) Apply(s models.BalancingSuggestion) models.BalancingResult {
	return e.applyOn(e.Snapshot, s)
}

func (e *Engine) applyOn(snap *snapshot.Snapshot, s models.BalancingSuggestion) (result models.BalancingResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(&engerrors.PanicError{Value: r})
		}
	}()

	switch s.Type {
	case models.SuggestRedistribute:
		return e.redistribute(snap, s)
	case models.SuggestSwapShifts:
		return e.swap(snap, s)
	case models.SuggestAdjustHours:
		return failure(engerrors.ErrNotImplemented)
	}
	return failure(fmt.Errorf("%w: %q", engerrors.ErrUnknownSuggestion, s.Type))
}

// Validate runs the conflict checks a suggestion would face without applying it
func (e *Engine) Validate(s models.BalancingSuggestion) (models.ValidationResult, error) {
	var affected []models.Shift
	switch s.Type {
	case models.SuggestRedistribute:
		if s.SourceEmployeeID == "" || s.TargetEmployeeID == "" {
			return models.ValidationResult{}, engerrors.ErrMissingEmployees
		}
		affected, _ = pickRedistribution(e.Snapshot, s)
	case models.SuggestSwapShifts:
		anchor, candidate, err := pickSwap(e.Snapshot, s)
		if err != nil {
			return models.ValidationResult{}, err
		}
		affected = []models.Shift{anchor, candidate}
	case models.SuggestAdjustHours:
		return models.ValidationResult{}, engerrors.ErrNotImplemented
	default:
		return models.ValidationResult{}, fmt.Errorf("%w: %q", engerrors.ErrUnknownSuggestion, s.Type)
	}
	return e.checker(e.Snapshot).Validate(s, affected), nil
}

func (e *Engine) checker(snap *snapshot.Snapshot) conflicts.Checker {
	if e.Checker != nil {
		return e.Checker
	}
	return conflicts.NewValidator(snap)
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// redistribute moves the source employee's smallest unlocked shifts to the target
// until the requested hours are covered.
func (e *Engine) redistribute(snap *snapshot.Snapshot, s models.BalancingSuggestion) models.BalancingResult {
	if s.SourceEmployeeID == "" || s.TargetEmployeeID == "" {
		return failure(engerrors.ErrMissingEmployees)
	}

	selected, total := pickRedistribution(snap, s)
	if len(selected) == 0 {
		return failure(fmt.Errorf("%w for employee %s", engerrors.ErrNoCandidates, s.SourceEmployeeID))
	}

	validation := e.checker(snap).Validate(s, selected)
	if !validation.IsValid {
		return rejected(validation)
	}

	now := e.now()
	result := models.BalancingResult{
		Success: true,
		Errors:  append([]string{}, validation.Warnings...),
		Summary: models.BalancingSummary{
			ShiftsModified:     len(selected),
			EmployeesAffected:  []string{s.SourceEmployeeID, s.TargetEmployeeID},
			HoursRedistributed: total,
		},
	}
	for _, sh := range selected {
		update := reassign(sh.ID, s.TargetEmployeeID, now)
		result.Updates = append(result.Updates, update)
		result.ModifiedShifts = append(result.ModifiedShifts, update.Data.Apply(sh))
	}
	return result
}

// pickRedistribution greedily accumulates the smallest unlocked shifts of the source,
// staying within the tolerance and stopping once the target is reached.
func pickRedistribution(snap *snapshot.Snapshot, s models.BalancingSuggestion) ([]models.Shift, float64) {
	target := math.Abs(s.ProposedChanges.Impact.HoursChange)
	if target == 0 {
		return nil, 0
	}

	candidates := snap.UnlockedShiftsOf(s.SourceEmployeeID)
	sort.SliceStable(candidates, func(i, j int) bool {
		return hours.ShiftHours(candidates[i]) < hours.ShiftHours(candidates[j])
	})

	var selected []models.Shift
	var total float64
	for _, sh := range candidates {
		h := hours.ShiftHours(sh)
		if total+h > target+RedistributeTolerance {
			break
		}
		selected = append(selected, sh)
		total += h
		if total >= target {
			break
		}
	}
	return selected, total
}

// swap exchanges the anchor shift with the target's closest comparable shift
func (e *Engine) swap(snap *snapshot.Snapshot, s models.BalancingSuggestion) models.BalancingResult {
	anchor, candidate, err := pickSwap(snap, s)
	if err != nil {
		return failure(err)
	}

	validation := e.checker(snap).Validate(s, []models.Shift{anchor, candidate})
	if !validation.IsValid {
		return rejected(validation)
	}

	now := e.now()
	toTarget := reassign(anchor.ID, s.TargetEmployeeID, now)
	toSource := reassign(candidate.ID, s.SourceEmployeeID, now)

	return models.BalancingResult{
		Success:        true,
		ModifiedShifts: []models.Shift{toTarget.Data.Apply(anchor), toSource.Data.Apply(candidate)},
		Updates:        []models.ShiftUpdate{toTarget, toSource},
		Errors:         append([]string{}, validation.Warnings...),
		Summary: models.BalancingSummary{
			ShiftsModified:     2,
			EmployeesAffected:  []string{s.SourceEmployeeID, s.TargetEmployeeID},
			HoursRedistributed: math.Abs(hours.ShiftHours(anchor) - hours.ShiftHours(candidate)),
		},
	}
}

func pickSwap(snap *snapshot.Snapshot, s models.BalancingSuggestion) (models.Shift, models.Shift, error) {
	if s.SourceEmployeeID == "" || s.TargetEmployeeID == "" {
		return models.Shift{}, models.Shift{}, engerrors.ErrMissingEmployees
	}
	if s.ShiftID == "" {
		return models.Shift{}, models.Shift{}, engerrors.ErrMissingShift
	}

	anchor, ok := snap.Shift(s.ShiftID)
	if !ok {
		return models.Shift{}, models.Shift{}, &engerrors.ReferenceError{Kind: "shift", ID: s.ShiftID, Err: engerrors.ErrShiftNotFound}
	}
	if anchor.EmployeeID != s.SourceEmployeeID {
		return models.Shift{}, models.Shift{}, &engerrors.ReferenceError{Kind: "shift", ID: s.ShiftID, Err: engerrors.ErrShiftNotOwned}
	}
	if anchor.IsLocked {
		return models.Shift{}, models.Shift{}, &engerrors.ReferenceError{Kind: "shift", ID: s.ShiftID, Err: engerrors.ErrShiftLocked}
	}

	anchorHours := hours.ShiftHours(anchor)
	var best *models.Shift
	bestDiff := math.Inf(1)
	for _, c := range snap.UnlockedShiftsOf(s.TargetEmployeeID) {
		if c.ID == anchor.ID {
			continue
		}
		// Same day and same store would make the swap a no-op
		if c.Date == anchor.Date && c.StoreID == anchor.StoreID {
			continue
		}
		diff := math.Abs(hours.ShiftHours(c) - anchorHours)
		if diff > SwapMaxDifference || diff >= bestDiff {
			continue
		}
		c := c
		best, bestDiff = &c, diff
	}
	if best == nil {
		return models.Shift{}, models.Shift{}, fmt.Errorf("%w with employee %s", engerrors.ErrNoCompatibleShift, s.TargetEmployeeID)
	}
	return anchor, *best, nil
}

func reassign(shiftID, employeeID string, now time.Time) models.ShiftUpdate {
	return models.ShiftUpdate{
		ID: shiftID,
		Data: models.ShiftPatch{
			EmployeeID: &employeeID,
			UpdatedAt:  &now,
		},
	}
}

func failure(errs ...error) models.BalancingResult {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return models.BalancingResult{
		Success:        false,
		ModifiedShifts: []models.Shift{},
		Updates:        []models.ShiftUpdate{},
		Errors:         msgs,
		Summary:        models.BalancingSummary{EmployeesAffected: []string{}},
	}
}

func rejected(v models.ValidationResult) models.BalancingResult {
	errs := make([]error, 0, len(v.Errors))
	for _, msg := range v.Errors {
		errs = append(errs, fmt.Errorf("%w: %s", engerrors.ErrValidationFailed, msg))
	}
	if len(errs) == 0 {
		errs = append(errs, engerrors.ErrValidationFailed)
	}
	return failure(errs...)
}
