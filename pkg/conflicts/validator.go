// Package conflicts checks a balancing suggestion against the current snapshot.
package conflicts

import (
	"fmt"
	"sort"

	"github.com/arnavshah/workload-governance-go/internal/snapshot"
	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
)

// ContractTolerance is the share above contract hours tolerated before a warning
const ContractTolerance = 0.2

// Checker validates the shifts a suggestion touches
type Checker interface {
	Validate(suggestion models.BalancingSuggestion, affected []models.Shift) models.ValidationResult
}

// Validator resolves references against a snapshot
type Validator struct {
	snap *snapshot.Snapshot
}

// NewValidator creates a validator over the snapshot
func NewValidator(snap *snapshot.Snapshot) *Validator {
	return &Validator{snap: snap}
}

// Validate runs the existence, overlap and contract checks.
// Errors make the result invalid; warnings are advisory.
func (v *Validator) Validate(suggestion models.BalancingSuggestion, affected []models.Shift) models.ValidationResult {
	result := models.ValidationResult{
		Warnings:  []string{},
		Errors:    []string{},
		Conflicts: []models.Conflict{},
	}

	for _, id := range []string{suggestion.SourceEmployeeID, suggestion.TargetEmployeeID} {
		if id == "" {
			continue
		}
		if _, ok := v.snap.Employee(id); !ok {
			err := &engerrors.ReferenceError{Kind: "employee", ID: id, Err: engerrors.ErrEmployeeNotFound}
			result.Errors = append(result.Errors, err.Error())
		}
	}

	for _, s := range affected {
		if _, ok := v.snap.Shift(s.ID); !ok {
			err := &engerrors.ReferenceError{Kind: "shift", ID: s.ID, Err: engerrors.ErrShiftNotFound}
			result.Errors = append(result.Errors, err.Error())
		}
	}

	order, groups := groupByEmployee(affected)
	for _, empID := range order {
		empShifts := groups[empID]
		name, contract := v.describe(empID)

		for _, date := range duplicateDates(empShifts) {
			var ids []string
			for _, s := range empShifts {
				if s.Date == date {
					ids = append(ids, s.ID)
				}
			}
			msg := fmt.Sprintf("%s has overlapping shifts on %s", name, date)
			result.Conflicts = append(result.Conflicts, models.Conflict{
				Type:       models.ConflictOverlap,
				EmployeeID: empID,
				ShiftIDs:   ids,
				Message:    msg,
			})
			result.Errors = append(result.Errors, msg)
		}

		var total float64
		for _, s := range empShifts {
			total += hours.ShiftHours(s)
		}
		if total > contract*(1+ContractTolerance) {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s would work %sh on affected shifts, more than 20%% above the %sh contract",
				name, hours.Format(total), hours.Format(contract)))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func (v *Validator) describe(employeeID string) (string, float64) {
	e, ok := v.snap.Employee(employeeID)
	if !ok {
		return employeeID, models.DefaultContractHours
	}
	name := e.Name()
	if name == "" {
		name = e.ID
	}
	return name, e.WeeklyContract()
}

// groupByEmployee groups shifts by owner, keeping first-seen owner order
func groupByEmployee(shifts []models.Shift) ([]string, map[string][]models.Shift) {
	var order []string
	groups := make(map[string][]models.Shift)
	for _, s := range shifts {
		if _, ok := groups[s.EmployeeID]; !ok {
			order = append(order, s.EmployeeID)
		}
		groups[s.EmployeeID] = append(groups[s.EmployeeID], s)
	}
	return order, groups
}

// duplicateDates returns, sorted, the calendar dates held by more than one shift
func duplicateDates(shifts []models.Shift) []string {
	counts := make(map[string]int)
	for _, s := range shifts {
		counts[s.Date]++
	}
	var dates []string
	for d, n := range counts {
		if n > 1 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}
