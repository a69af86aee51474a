package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultContractHours is used when an employee has no contract hours set
const DefaultContractHours = 40.0

// Employee represents a store employee with a weekly contract
type Employee struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FirstName     string    `gorm:"not null" json:"first_name"`
	LastName      string    `json:"last_name"`
	ContractHours float64   `gorm:"default:40" json:"contract_hours"`
	StoreID       string    `gorm:"index;type:varchar(64)" json:"store_id"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name returns the display name of the employee
func (e Employee) Name() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// WeeklyContract returns the contract hours, falling back to the default cap
func (e Employee) WeeklyContract() float64 {
	if e.ContractHours <= 0 {
		return DefaultContractHours
	}
	return e.ContractHours
}

// BeforeCreate assigns an id when the caller did not provide one
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Store represents a retail location
type Store struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not provide one
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ShiftStatus is the scheduling status of a shift
type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "scheduled"
	ShiftCompleted ShiftStatus = "completed"
	ShiftCancelled ShiftStatus = "cancelled"
	ShiftAbsent    ShiftStatus = "absent"
)

// Shift is a single work slot of an employee in a store.
// Date is a calendar day (YYYY-MM-DD), StartTime and EndTime are local HH:MM.
// An EndTime earlier than StartTime means the shift crosses midnight.
type Shift struct {
	ID               string           `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EmployeeID       string           `gorm:"index;type:varchar(64);not null" json:"employee_id"`
	StoreID          string           `gorm:"index;type:varchar(64);not null" json:"store_id"`
	Date             string           `gorm:"index;type:varchar(10);not null" json:"date"`
	StartTime        string           `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime          string           `gorm:"type:varchar(8);not null" json:"end_time"`
	BreakDuration    int              `gorm:"default:0" json:"break_duration"`
	ActualHours      *float64         `json:"actual_hours,omitempty"`
	Status           ShiftStatus      `gorm:"type:varchar(20);default:'scheduled'" json:"status"`
	ValidationStatus ValidationStatus `gorm:"type:varchar(20);default:'scheduled'" json:"validation_status"`
	IsLocked         bool             `gorm:"default:false" json:"is_locked"`
	LockedAt         *time.Time       `json:"locked_at,omitempty"`
	LockedBy         string           `json:"locked_by,omitempty"`
	Notes            string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not provide one
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ShiftPatch holds the fields an update instruction changes. Nil fields are left untouched.
type ShiftPatch struct {
	EmployeeID       *string           `json:"employee_id,omitempty"`
	ValidationStatus *ValidationStatus `json:"validation_status,omitempty"`
	IsLocked         *bool             `json:"is_locked,omitempty"`
	LockedAt         *time.Time        `json:"locked_at,omitempty"`
	LockedBy         *string           `json:"locked_by,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"`
}

// Apply returns a copy of the shift with the patch applied
func (p ShiftPatch) Apply(s Shift) Shift {
	if p.EmployeeID != nil {
		s.EmployeeID = *p.EmployeeID
	}
	if p.ValidationStatus != nil {
		s.ValidationStatus = *p.ValidationStatus
	}
	if p.IsLocked != nil {
		s.IsLocked = *p.IsLocked
	}
	if p.LockedAt != nil {
		t := *p.LockedAt
		s.LockedAt = &t
	}
	if p.LockedBy != nil {
		s.LockedBy = *p.LockedBy
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.UpdatedAt != nil {
		s.UpdatedAt = *p.UpdatedAt
	}
	return s
}

// Columns maps the patch to persisted column names
func (p ShiftPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.EmployeeID != nil {
		cols["employee_id"] = *p.EmployeeID
	}
	if p.ValidationStatus != nil {
		cols["validation_status"] = string(*p.ValidationStatus)
	}
	if p.IsLocked != nil {
		cols["is_locked"] = *p.IsLocked
	}
	if p.LockedAt != nil {
		cols["locked_at"] = *p.LockedAt
	}
	if p.LockedBy != nil {
		cols["locked_by"] = *p.LockedBy
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.UpdatedAt != nil {
		cols["updated_at"] = *p.UpdatedAt
	}
	return cols
}

// ShiftUpdate is an update instruction the caller applies through its own persistence
type ShiftUpdate struct {
	ID   string     `json:"id"`
	Data ShiftPatch `json:"data"`
}
