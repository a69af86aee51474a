package database

import (
	"context"
	"fmt"
	"time"

	engerrors "github.com/arnavshah/workload-governance-go/pkg/errors"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Week is the set of records an engine run needs for one evaluation period
type Week struct {
	Employees []models.Employee
	Stores    []models.Store
	Shifts    []models.Shift
}

// Repository reads snapshots from and writes update instructions to the database
type Repository struct {
	DB *gorm.DB
}

// NewRepository creates a repository over db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// LoadWeek returns every employee and store plus the shifts dated within [start, end].
// Shifts are ordered by date, start time and id so engine runs are reproducible.
func (r *Repository) LoadWeek(ctx context.Context, start, end time.Time) (*Week, error) {
	var week Week
	db := r.DB.WithContext(ctx)

	if err := db.Order("id").Find(&week.Employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	if err := db.Order("id").Find(&week.Stores).Error; err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	err := db.
		Where("date >= ? AND date <= ?", start.Format(hours.DayLayout), end.Format(hours.DayLayout)).
		Order("date, start_time, id").
		Find(&week.Shifts).Error
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	return &week, nil
}

// LoadShifts returns the shifts with the given ids, in the order the ids were given.
// Unknown ids are reported as a ReferenceError.
func (r *Repository) LoadShifts(ctx context.Context, ids []string) ([]models.Shift, error) {
	var found []models.Shift
	if len(ids) > 0 {
		if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("load shifts: %w", err)
		}
	}

	byID := make(map[string]models.Shift, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	shifts := make([]models.Shift, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, &engerrors.ReferenceError{Kind: "shift", ID: id, Err: engerrors.ErrShiftNotFound}
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// ApplyUpdates persists update instructions in a single transaction.
// If any shift no longer exists nothing is written.
func (r *Repository) ApplyUpdates(ctx context.Context, updates []models.ShiftUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			cols := u.Data.Columns()
			if len(cols) == 0 {
				continue
			}
			res := tx.Model(&models.Shift{}).Where("id = ?", u.ID).Updates(cols)
			if res.Error != nil {
				return fmt.Errorf("update shift %s: %w", u.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return &engerrors.ReferenceError{Kind: "shift", ID: u.ID, Err: engerrors.ErrShiftNotFound}
			}
		}
		return nil
	})
}

// SaveWeek upserts employees, stores and shifts
func (r *Repository) SaveWeek(ctx context.Context, week *Week) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(week.Employees) > 0 {
			if err := upsert.Create(&week.Employees).Error; err != nil {
				return fmt.Errorf("save employees: %w", err)
			}
		}
		if len(week.Stores) > 0 {
			if err := upsert.Create(&week.Stores).Error; err != nil {
				return fmt.Errorf("save stores: %w", err)
			}
		}
		if len(week.Shifts) > 0 {
			if err := upsert.Create(&week.Shifts).Error; err != nil {
				return fmt.Errorf("save shifts: %w", err)
			}
		}
		return nil
	})
}
