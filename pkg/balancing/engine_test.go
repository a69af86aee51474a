package balancing_test

import (
	"testing"
	"time"

	"github.com/arnavshah/workload-governance-go/internal/snapshot"
	"github.com/arnavshah/workload-governance-go/pkg/balancing"
	"github.com/arnavshah/workload-governance-go/pkg/conflicts"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func shift(id, employeeID, storeID, date, start, end string) models.Shift {
	return models.Shift{ID: id, EmployeeID: employeeID, StoreID: storeID, Date: date, StartTime: start, EndTime: end}
}

func staff() []models.Employee {
	return []models.Employee{
		{ID: "alice", FirstName: "Alice", ContractHours: 40, IsActive: true},
		{ID: "bob", FirstName: "Bob", ContractHours: 40, IsActive: true},
		{ID: "carol", FirstName: "Carol", ContractHours: 5, IsActive: true},
	}
}

func newEngine(shifts ...models.Shift) *balancing.Engine {
	e := balancing.NewEngine(snapshot.New(staff(), nil, shifts))
	e.Now = func() time.Time { return fixedNow }
	return e
}

func redistribute(id, source, target string, h float64) models.BalancingSuggestion {
	return models.BalancingSuggestion{
		ID:               id,
		Type:             models.SuggestRedistribute,
		SourceEmployeeID: source,
		TargetEmployeeID: target,
		ProposedChanges:  models.ProposedChanges{Impact: models.Impact{HoursChange: h}},
	}
}

func swap(id, source, target, shiftID string) models.BalancingSuggestion {
	return models.BalancingSuggestion{
		ID:               id,
		Type:             models.SuggestSwapShifts,
		SourceEmployeeID: source,
		TargetEmployeeID: target,
		ShiftID:          shiftID,
	}
}

func updatedIDs(updates []models.ShiftUpdate) []string {
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestRedistribute_SmallestFirst(t *testing.T) {
	e := newEngine(
		shift("a3", "alice", "A", "2026-10-14", "09:00", "17:00"),
		shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00"),
		shift("a2", "alice", "A", "2026-10-13", "09:00", "13:00"),
	)

	result := e.Apply(redistribute("s1", "alice", "bob", 8))

	require.True(t, result.Success, result.Errors)
	assert.Equal(t, []string{"a1", "a2"}, updatedIDs(result.Updates))
	assert.Equal(t, 8.0, result.Summary.HoursRedistributed)
	assert.Equal(t, 2, result.Summary.ShiftsModified)
	assert.Equal(t, []string{"alice", "bob"}, result.Summary.EmployeesAffected)
	assert.Empty(t, result.Errors)

	for _, u := range result.Updates {
		require.NotNil(t, u.Data.EmployeeID)
		assert.Equal(t, "bob", *u.Data.EmployeeID)
		require.NotNil(t, u.Data.UpdatedAt)
		assert.Equal(t, fixedNow, *u.Data.UpdatedAt)
	}
	for _, s := range result.ModifiedShifts {
		assert.Equal(t, "bob", s.EmployeeID)
	}

	// the snapshot itself is untouched
	original, _ := e.Snapshot.Shift("a1")
	assert.Equal(t, "alice", original.EmployeeID)
}

func TestRedistribute_Failures(t *testing.T) {
	lockedA := shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00")
	lockedA.IsLocked = true
	lockedB := shift("a2", "alice", "A", "2026-10-13", "09:00", "13:00")
	lockedB.IsLocked = true

	tests := map[string]struct {
		shifts     []models.Shift
		suggestion models.BalancingSuggestion
		contains   string
	}{
		"AllShiftsLocked": {
			shifts:     []models.Shift{lockedA, lockedB},
			suggestion: redistribute("s", "alice", "bob", 4),
			contains:   "no suitable shifts",
		},
		"SmallestShiftExceedsTolerance": {
			shifts:     []models.Shift{shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00")},
			suggestion: redistribute("s", "alice", "bob", 2),
			contains:   "no suitable shifts",
		},
		"MissingTarget": {
			shifts:     []models.Shift{shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00")},
			suggestion: redistribute("s", "alice", "", 4),
			contains:   "source and target employees are required",
		},
		"UnknownTarget": {
			shifts:     []models.Shift{shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00")},
			suggestion: redistribute("s", "alice", "zed", 4),
			contains:   "zed",
		},
		"SameDayOverlap": {
			shifts: []models.Shift{
				shift("a1", "alice", "A", "2026-10-12", "08:00", "12:00"),
				shift("a2", "alice", "B", "2026-10-12", "14:00", "18:00"),
			},
			suggestion: redistribute("s", "alice", "bob", 8),
			contains:   "overlapping shifts on 2026-10-12",
		},
		"ZeroHours": {
			shifts:     []models.Shift{shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00")},
			suggestion: redistribute("s", "alice", "bob", 0),
			contains:   "no suitable shifts",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := newEngine(tc.shifts...).Apply(tc.suggestion)

			assert.False(t, result.Success)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, result.Errors[0], tc.contains)
			assert.Empty(t, result.ModifiedShifts)
			assert.Empty(t, result.Updates)
		})
	}
}

func TestRedistribute_ContractWarningDoesNotBlock(t *testing.T) {
	e := newEngine(
		shift("c1", "carol", "A", "2026-10-12", "09:00", "13:00"),
		shift("c2", "carol", "A", "2026-10-13", "09:00", "13:00"),
	)

	result := e.Apply(redistribute("s", "carol", "bob", 8))

	require.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Carol")
}

func TestSwap(t *testing.T) {
	e := newEngine(
		shift("anchor", "alice", "A", "2026-10-12", "09:00", "15:00"), // 6h Monday
		shift("b-same", "bob", "A", "2026-10-12", "08:00", "14:00"),   // 6h same day+store
		shift("b-7h", "bob", "A", "2026-10-13", "09:00", "16:00"),     // 7h
		shift("b-5.5h", "bob", "B", "2026-10-14", "09:00", "14:30"),   // 5.5h
		shift("b-9h", "bob", "A", "2026-10-15", "08:00", "17:00"),     // 9h, too far
	)

	result := e.Apply(swap("s", "alice", "bob", "anchor"))

	require.True(t, result.Success, result.Errors)
	require.Len(t, result.Updates, 2)
	assert.Equal(t, "anchor", result.Updates[0].ID)
	assert.Equal(t, "bob", *result.Updates[0].Data.EmployeeID)
	assert.Equal(t, "b-5.5h", result.Updates[1].ID)
	assert.Equal(t, "alice", *result.Updates[1].Data.EmployeeID)
	assert.Equal(t, 0.5, result.Summary.HoursRedistributed)
	assert.Equal(t, 2, result.Summary.ShiftsModified)
	assert.Equal(t, []string{"alice", "bob"}, result.Summary.EmployeesAffected)
}

func TestSwap_Failures(t *testing.T) {
	lockedAnchor := shift("locked", "alice", "A", "2026-10-12", "09:00", "15:00")
	lockedAnchor.IsLocked = true
	lockedCandidate := shift("b-locked", "bob", "A", "2026-10-13", "09:00", "15:00")
	lockedCandidate.IsLocked = true

	base := []models.Shift{
		shift("anchor", "alice", "A", "2026-10-12", "09:00", "15:00"),
		shift("b-9h", "bob", "A", "2026-10-12", "08:00", "17:00"),
		lockedAnchor,
		lockedCandidate,
	}

	tests := map[string]struct {
		suggestion models.BalancingSuggestion
		contains   string
	}{
		"OnlySameDayStoreAndTooLong": {suggestion: swap("s", "alice", "bob", "anchor"), contains: "no compatible shift"},
		"MissingAnchor":              {suggestion: swap("s", "alice", "bob", "nope"), contains: "shift not found"},
		"AnchorNotOwned":             {suggestion: swap("s", "bob", "alice", "anchor"), contains: "does not belong"},
		"AnchorLocked":               {suggestion: swap("s", "alice", "bob", "locked"), contains: "locked"},
		"NoAnchorID":                 {suggestion: swap("s", "alice", "bob", ""), contains: "shift id is required"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := newEngine(base...).Apply(tc.suggestion)

			assert.False(t, result.Success)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, result.Errors[0], tc.contains)
			assert.Empty(t, result.ModifiedShifts)
		})
	}
}

func TestApply_AdjustHoursIsNotImplemented(t *testing.T) {
	result := newEngine().Apply(models.BalancingSuggestion{Type: models.SuggestAdjustHours, SourceEmployeeID: "alice"})

	assert.False(t, result.Success)
	assert.Equal(t, []string{"hours adjustment is not implemented yet"}, result.Errors)
	assert.Empty(t, result.ModifiedShifts)
}

func TestApply_UnknownType(t *testing.T) {
	result := newEngine().Apply(models.BalancingSuggestion{Type: "teleport"})

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "teleport")
}

func TestValidate_DryRun(t *testing.T) {
	e := newEngine(
		shift("a1", "alice", "A", "2026-10-12", "08:00", "12:00"),
		shift("a2", "alice", "B", "2026-10-12", "14:00", "18:00"),
	)

	result, err := e.Validate(redistribute("s", "alice", "bob", 8))
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.ConflictOverlap, result.Conflicts[0].Type)

	_, err = e.Validate(models.BalancingSuggestion{Type: models.SuggestAdjustHours})
	assert.Error(t, err)
}

// panickyChecker blows up on one suggestion and delegates otherwise
type panickyChecker struct {
	next    conflicts.Checker
	trigger string
}

func (p panickyChecker) Validate(s models.BalancingSuggestion, affected []models.Shift) models.ValidationResult {
	if s.ID == p.trigger {
		panic("storage exploded")
	}
	return p.next.Validate(s, affected)
}

func TestApplyMultiple_FailureDoesNotAbortBatch(t *testing.T) {
	e := newEngine(
		shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00"),
		shift("a2", "alice", "A", "2026-10-13", "09:00", "13:00"),
		shift("a3", "alice", "A", "2026-10-14", "09:00", "17:00"),
		shift("b1", "bob", "A", "2026-10-15", "09:00", "16:00"),
	)
	e.Checker = panickyChecker{next: conflicts.NewValidator(e.Snapshot), trigger: "two"}

	batch := e.ApplyMultiple([]models.BalancingSuggestion{
		redistribute("one", "alice", "bob", 8),
		redistribute("two", "alice", "carol", 4),
		swap("three", "alice", "bob", "a3"),
	})

	require.Len(t, batch.Successful, 2)
	assert.Equal(t, "one", batch.Successful[0].Suggestion.ID)
	assert.Equal(t, "three", batch.Successful[1].Suggestion.ID)
	assert.Equal(t, 2, batch.Successful[1].Index)

	require.Len(t, batch.Failed, 1)
	assert.Equal(t, "two", batch.Failed[0].Suggestion.ID)
	require.NotEmpty(t, batch.Failed[0].Result.Errors)
	assert.Contains(t, batch.Failed[0].Result.Errors[0], "storage exploded")

	assert.Equal(t, models.BatchSummary{
		Total:                   3,
		Successful:              2,
		Failed:                  1,
		TotalShiftsModified:     4,
		TotalHoursRedistributed: 9,
	}, batch.Summary)
	assert.Equal(t, []string{"a1", "a2", "a3", "b1"}, updatedIDs(batch.Updates))
}

func TestApplyMultiple_StaleVersusRebased(t *testing.T) {
	shifts := []models.Shift{
		shift("a1", "alice", "A", "2026-10-12", "09:00", "13:00"),
		shift("a2", "alice", "A", "2026-10-13", "09:00", "14:00"),
	}
	suggestions := []models.BalancingSuggestion{
		redistribute("first", "alice", "bob", 4),
		redistribute("second", "alice", "carol", 4),
	}

	stale := newEngine(shifts...).ApplyMultiple(suggestions)
	require.Len(t, stale.Successful, 2)
	assert.Equal(t, []string{"a1", "a1"}, updatedIDs(stale.Updates))

	rebased := newEngine(shifts...).ApplyMultipleRebased(suggestions)
	require.Len(t, rebased.Successful, 2)
	assert.Equal(t, []string{"a1", "a2"}, updatedIDs(rebased.Updates))
}

func TestApplyMultiple_Empty(t *testing.T) {
	batch := newEngine().ApplyMultiple(nil)

	assert.Empty(t, batch.Successful)
	assert.Empty(t, batch.Failed)
	assert.Equal(t, 0, batch.Summary.Total)
}
