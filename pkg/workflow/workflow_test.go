package workflow_test

import (
	"errors"
	"testing"
	"time"

	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/arnavshah/workload-governance-go/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)

func TestCanTransition(t *testing.T) {
	tests := map[string]struct {
		from     models.ValidationStatus
		to       models.ValidationStatus
		role     models.Role
		expected error
	}{
		"EmployeeSubmits":           {from: models.StatusScheduled, to: models.StatusSubmitted, role: models.RoleEmployee},
		"EmptyReadsAsScheduled":     {from: "", to: models.StatusSubmitted, role: models.RoleEmployee},
		"ManagerConfirms":           {from: models.StatusSubmitted, to: models.StatusConfirmed, role: models.RoleManager},
		"EmployeeCannotConfirm":     {from: models.StatusSubmitted, to: models.StatusConfirmed, role: models.RoleEmployee, expected: engerrors.ErrUnauthorizedTransition},
		"ManagerCannotLock":         {from: models.StatusConfirmed, to: models.StatusLockedFinal, role: models.RoleManager, expected: engerrors.ErrUnauthorizedTransition},
		"DirectorLocks":             {from: models.StatusConfirmed, to: models.StatusLockedFinal, role: models.RoleDirector},
		"AdminLocks":                {from: models.StatusConfirmed, to: models.StatusLockedFinal, role: models.RoleAdmin},
		"CannotSkipToLocked":        {from: models.StatusScheduled, to: models.StatusLockedFinal, role: models.RoleAdmin, expected: engerrors.ErrInvalidTransition},
		"LockedIsTerminal":          {from: models.StatusLockedFinal, to: models.StatusScheduled, role: models.RoleAdmin, expected: engerrors.ErrInvalidTransition},
		"RejectedResubmitted":       {from: models.StatusRejected, to: models.StatusScheduled, role: models.RoleManager},
		"SameStatus":                {from: models.StatusConfirmed, to: models.StatusConfirmed, role: models.RoleAdmin, expected: engerrors.ErrAlreadyInStatus},
		"UnknownTarget":             {from: models.StatusScheduled, to: "archived", role: models.RoleAdmin, expected: engerrors.ErrUnknownStatus},
		"UnknownRoleHasNoPrivilege": {from: models.StatusScheduled, to: models.StatusSubmitted, role: "guest", expected: engerrors.ErrUnauthorizedTransition},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := workflow.CanTransition(tc.from, tc.to, tc.role)
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.expected), "got %v", err)
		})
	}
}

func TestAvailableTransitions(t *testing.T) {
	assert.Equal(t,
		[]models.ValidationStatus{models.StatusSubmitted},
		workflow.AvailableTransitions(models.StatusScheduled, models.RoleEmployee))
	assert.Equal(t,
		[]models.ValidationStatus{models.StatusRejected, models.StatusLockedFinal},
		workflow.AvailableTransitions(models.StatusConfirmed, models.RoleAdmin))
	assert.Empty(t, workflow.AvailableTransitions(models.StatusLockedFinal, models.RoleAdmin))
}

func TestTransition_LockFinal(t *testing.T) {
	shifts := []models.Shift{
		{ID: "ok", ValidationStatus: models.StatusConfirmed, Notes: "  opening shift  "},
		{ID: "too-early", ValidationStatus: models.StatusSubmitted},
		{ID: "ok-no-notes", ValidationStatus: models.StatusConfirmed},
	}

	result := workflow.Transition(workflow.BulkRequest{
		Shifts:    shifts,
		Target:    models.StatusLockedFinal,
		ActorRole: models.RoleDirector,
		ActorName: "Dana Director",
		Reason:    " payroll closed ",
	}, now)

	require.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, models.TransitionSummary{Total: 3, Successful: 2, Failed: 1, Target: models.StatusLockedFinal}, result.Summary)

	assert.Equal(t, "too-early", result.Failed[0].ShiftID)
	assert.Equal(t, models.StatusSubmitted, result.Failed[0].From)
	assert.Contains(t, result.Failed[0].Reason, "invalid transition")

	first := result.ModifiedShifts[0]
	assert.Equal(t, "ok", first.ID)
	assert.Equal(t, models.StatusLockedFinal, first.ValidationStatus)
	assert.True(t, first.IsLocked)
	require.NotNil(t, first.LockedAt)
	assert.Equal(t, now, *first.LockedAt)
	assert.Equal(t, "Dana Director", first.LockedBy)
	assert.Equal(t, "opening shift  \npayroll closed", first.Notes)

	second := result.ModifiedShifts[1]
	assert.Equal(t, "payroll closed", second.Notes)

	// input records are not modified
	assert.False(t, shifts[0].IsLocked)
}

func TestTransition_UnauthorizedLockLeavesShiftUnchanged(t *testing.T) {
	shifts := []models.Shift{{ID: "s1", ValidationStatus: models.StatusConfirmed}}

	result := workflow.Transition(workflow.BulkRequest{
		Shifts:    shifts,
		Target:    models.StatusLockedFinal,
		ActorRole: models.RoleManager,
		ActorName: "Morgan",
	}, now)

	assert.Empty(t, result.Successful)
	assert.Empty(t, result.ModifiedShifts)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "s1", result.Failed[0].ShiftID)
	assert.Contains(t, result.Failed[0].Reason, "role not allowed")
	assert.False(t, shifts[0].IsLocked)
	assert.Equal(t, models.StatusConfirmed, shifts[0].ValidationStatus)
}

func TestTransition_NonFinalDoesNotLock(t *testing.T) {
	result := workflow.Transition(workflow.BulkRequest{
		Shifts:    []models.Shift{{ID: "s1"}},
		Target:    models.StatusSubmitted,
		ActorRole: models.RoleEmployee,
		Reason:    "ready",
	}, now)

	require.Len(t, result.Successful, 1)
	patch := result.Successful[0].Data
	require.NotNil(t, patch.ValidationStatus)
	assert.Equal(t, models.StatusSubmitted, *patch.ValidationStatus)
	assert.Nil(t, patch.IsLocked)
	assert.Nil(t, patch.Notes)
	assert.Equal(t, now, *patch.UpdatedAt)
}

func TestTransition_LockedByFallsBackToRole(t *testing.T) {
	result := workflow.Transition(workflow.BulkRequest{
		Shifts:    []models.Shift{{ID: "s1", ValidationStatus: models.StatusConfirmed}},
		Target:    models.StatusLockedFinal,
		ActorRole: models.RoleAdmin,
	}, now)

	require.Len(t, result.ModifiedShifts, 1)
	assert.Equal(t, "admin", result.ModifiedShifts[0].LockedBy)
}
