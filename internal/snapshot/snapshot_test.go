package snapshot

import (
	"testing"

	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Lookups(t *testing.T) {
	s := New(
		[]models.Employee{{ID: "e1"}, {ID: "e2"}},
		[]models.Store{{ID: "s1", Name: "Downtown"}},
		[]models.Shift{
			{ID: "sh1", EmployeeID: "e1"},
			{ID: "sh2", EmployeeID: "e2"},
			{ID: "sh3", EmployeeID: "e1", IsLocked: true},
		},
	)

	_, ok := s.Employee("e1")
	assert.True(t, ok)
	_, ok = s.Employee("missing")
	assert.False(t, ok)

	st, ok := s.Store("s1")
	require.True(t, ok)
	assert.Equal(t, "Downtown", st.Name)

	assert.Len(t, s.ShiftsOf("e1"), 2)
	unlocked := s.UnlockedShiftsOf("e1")
	require.Len(t, unlocked, 1)
	assert.Equal(t, "sh1", unlocked[0].ID)

	ids := []string{}
	for _, sh := range s.Shifts() {
		ids = append(ids, sh.ID)
	}
	assert.Equal(t, []string{"sh1", "sh2", "sh3"}, ids)
}

func TestSnapshot_WithUpdatesLeavesOriginalIntact(t *testing.T) {
	s := New(nil, nil, []models.Shift{{ID: "sh1", EmployeeID: "e1"}})
	target := "e2"

	next := s.WithUpdates([]models.ShiftUpdate{
		{ID: "sh1", Data: models.ShiftPatch{EmployeeID: &target}},
		{ID: "unknown", Data: models.ShiftPatch{EmployeeID: &target}},
	})

	before, _ := s.Shift("sh1")
	after, _ := next.Shift("sh1")
	assert.Equal(t, "e1", before.EmployeeID)
	assert.Equal(t, "e2", after.EmployeeID)
	_, ok := next.Shift("unknown")
	assert.False(t, ok)
}
