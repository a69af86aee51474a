package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnavshah/workload-governance-go/pkg/database"
	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepository(t *testing.T) *database.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := database.NewRepository(db)
	require.NoError(t, repo.SaveWeek(context.Background(), &database.Week{
		Employees: []models.Employee{
			{ID: "alice", FirstName: "Alice", ContractHours: 40, IsActive: true},
			{ID: "bob", FirstName: "Bob", ContractHours: 32, IsActive: true},
			{ID: "carol", FirstName: "Carol", ContractHours: 20, IsActive: false},
		},
		Stores: []models.Store{{ID: "s1", Name: "Downtown", IsActive: true}},
		Shifts: []models.Shift{
			{ID: "a2", EmployeeID: "alice", StoreID: "s1", Date: "2026-10-13", StartTime: "09:00", EndTime: "17:00"},
			{ID: "a1", EmployeeID: "alice", StoreID: "s1", Date: "2026-10-12", StartTime: "09:00", EndTime: "17:00"},
			{ID: "b1", EmployeeID: "bob", StoreID: "s1", Date: "2026-10-12", StartTime: "12:00", EndTime: "20:00"},
			{ID: "old", EmployeeID: "bob", StoreID: "s1", Date: "2026-10-01", StartTime: "09:00", EndTime: "17:00"},
		},
	}))
	return repo
}

func shiftIDs(shifts []models.Shift) []string {
	ids := make([]string, len(shifts))
	for i, s := range shifts {
		ids[i] = s.ID
	}
	return ids
}

func TestLoadWeek(t *testing.T) {
	repo := newRepository(t)
	start := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	week, err := repo.LoadWeek(context.Background(), start, start.AddDate(0, 0, 6))
	require.NoError(t, err)

	require.Len(t, week.Employees, 3)
	assert.Equal(t, "carol", week.Employees[2].ID)
	assert.False(t, week.Employees[2].IsActive)
	assert.Len(t, week.Stores, 1)
	assert.Equal(t, []string{"a1", "b1", "a2"}, shiftIDs(week.Shifts))
}

func TestLoadShifts(t *testing.T) {
	repo := newRepository(t)

	shifts, err := repo.LoadShifts(context.Background(), []string{"b1", "a1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "a1"}, shiftIDs(shifts))

	_, err = repo.LoadShifts(context.Background(), []string{"a1", "ghost"})
	var ref *engerrors.ReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "ghost", ref.ID)
	assert.True(t, errors.Is(err, engerrors.ErrShiftNotFound))
}

func TestApplyUpdates(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	bob := "bob"
	locked := true
	status := models.StatusLockedFinal

	err := repo.ApplyUpdates(ctx, []models.ShiftUpdate{
		{ID: "a1", Data: models.ShiftPatch{EmployeeID: &bob, UpdatedAt: &now}},
		{ID: "a2", Data: models.ShiftPatch{ValidationStatus: &status, IsLocked: &locked, LockedAt: &now}},
	})
	require.NoError(t, err)

	shifts, err := repo.LoadShifts(ctx, []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, "bob", shifts[0].EmployeeID)
	assert.Equal(t, models.StatusLockedFinal, shifts[1].ValidationStatus)
	assert.True(t, shifts[1].IsLocked)
	require.NotNil(t, shifts[1].LockedAt)
	assert.True(t, now.Equal(*shifts[1].LockedAt))
}

func TestApplyUpdates_RollsBackOnMissingShift(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	bob := "bob"

	err := repo.ApplyUpdates(ctx, []models.ShiftUpdate{
		{ID: "a1", Data: models.ShiftPatch{EmployeeID: &bob}},
		{ID: "ghost", Data: models.ShiftPatch{EmployeeID: &bob}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engerrors.ErrShiftNotFound))

	shifts, err := repo.LoadShifts(ctx, []string{"a1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", shifts[0].EmployeeID)
}

func TestSaveWeek_AssignsIDs(t *testing.T) {
	repo := newRepository(t)
	week := &database.Week{Stores: []models.Store{{Name: "Uptown", IsActive: true}}}

	require.NoError(t, repo.SaveWeek(context.Background(), week))
	assert.NotEmpty(t, week.Stores[0].ID)
}
