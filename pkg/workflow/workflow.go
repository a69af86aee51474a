// Package workflow advances shifts through the validation lifecycle.
//
// scheduled -> submitted -> confirmed -> locked_final
// submitted and confirmed may be rejected; rejected shifts go back to scheduled.
// locked_final is terminal.
package workflow

import (
	"fmt"
	"strings"
	"time"

	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/models"
)

type edge struct {
	from, to models.ValidationStatus
}

// transitions maps each allowed edge to the least privileged role that may take it
var transitions = map[edge]models.Role{
	{models.StatusScheduled, models.StatusSubmitted}:   models.RoleEmployee,
	{models.StatusScheduled, models.StatusConfirmed}:   models.RoleManager,
	{models.StatusSubmitted, models.StatusConfirmed}:   models.RoleManager,
	{models.StatusSubmitted, models.StatusRejected}:    models.RoleManager,
	{models.StatusSubmitted, models.StatusScheduled}:   models.RoleManager,
	{models.StatusConfirmed, models.StatusRejected}:    models.RoleDirector,
	{models.StatusConfirmed, models.StatusLockedFinal}: models.RoleDirector,
	{models.StatusRejected, models.StatusScheduled}:    models.RoleManager,
}

// Current returns the workflow state of a shift; an empty status reads as scheduled
func Current(s models.Shift) models.ValidationStatus {
	if s.ValidationStatus == "" {
		return models.StatusScheduled
	}
	return s.ValidationStatus
}

// CanTransition checks whether role may move a shift from one status to another
func CanTransition(from, to models.ValidationStatus, role models.Role) error {
	if from == "" {
		from = models.StatusScheduled
	}
	if !from.Valid() || !to.Valid() {
		return engerrors.ErrUnknownStatus
	}
	if from == to {
		return engerrors.ErrAlreadyInStatus
	}
	minimum, ok := transitions[edge{from, to}]
	if !ok {
		return engerrors.ErrInvalidTransition
	}
	if role.Level() < minimum.Level() {
		return engerrors.ErrUnauthorizedTransition
	}
	return nil
}

// AvailableTransitions lists the statuses role may move a shift to from the given status
func AvailableTransitions(from models.ValidationStatus, role models.Role) []models.ValidationStatus {
	var out []models.ValidationStatus
	for _, to := range models.ValidationStatuses {
		if CanTransition(from, to, role) == nil {
			out = append(out, to)
		}
	}
	return out
}

// BulkRequest moves a set of shifts to one target status
type BulkRequest struct {
	Shifts    []models.Shift
	Target    models.ValidationStatus
	ActorRole models.Role
	ActorName string
	Reason    string
}

// Transition evaluates every shift independently. Eligible shifts get an update
// instruction, the rest a failure reason; a shift is never in both.
func Transition(req BulkRequest, now time.Time) models.TransitionResult {
	result := models.TransitionResult{
		Successful:     []models.ShiftUpdate{},
		ModifiedShifts: []models.Shift{},
		Failed:         []models.TransitionFailure{},
		Summary: models.TransitionSummary{
			Total:  len(req.Shifts),
			Target: req.Target,
		},
	}

	for _, s := range req.Shifts {
		from := Current(s)
		if err := CanTransition(from, req.Target, req.ActorRole); err != nil {
			terr := &engerrors.TransitionError{
				ShiftID: s.ID,
				From:    string(from),
				To:      string(req.Target),
				Role:    string(req.ActorRole),
				Err:     err,
			}
			result.Failed = append(result.Failed, models.TransitionFailure{
				ShiftID: s.ID,
				From:    from,
				Reason:  terr.Error(),
			})
			continue
		}

		update := models.ShiftUpdate{ID: s.ID, Data: patchFor(s, req, now)}
		result.Successful = append(result.Successful, update)
		result.ModifiedShifts = append(result.ModifiedShifts, update.Data.Apply(s))
	}

	result.Summary.Successful = len(result.Successful)
	result.Summary.Failed = len(result.Failed)
	return result
}

func patchFor(s models.Shift, req BulkRequest, now time.Time) models.ShiftPatch {
	target := req.Target
	patch := models.ShiftPatch{
		ValidationStatus: &target,
		UpdatedAt:        &now,
	}
	if target != models.StatusLockedFinal {
		return patch
	}

	locked := true
	actor := req.ActorName
	if actor == "" {
		actor = string(req.ActorRole)
	}
	patch.IsLocked = &locked
	patch.LockedAt = &now
	patch.LockedBy = &actor
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		notes := strings.TrimSpace(fmt.Sprintf("%s\n%s", s.Notes, reason))
		patch.Notes = &notes
	}
	return patch
}
