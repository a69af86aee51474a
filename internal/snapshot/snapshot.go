// Package snapshot indexes the records of a single engine invocation.
package snapshot

import (
	"github.com/arnavshah/workload-governance-go/pkg/models"
)

// Snapshot is an immutable view over employees, stores and shifts.
// Shifts keep their input order, which the engine relies on for determinism.
type Snapshot struct {
	employees map[string]models.Employee
	stores    map[string]models.Store
	shifts    map[string]models.Shift
	order     []string
}

// New indexes the given records. Later duplicates of an id win.
func New(employees []models.Employee, stores []models.Store, shifts []models.Shift) *Snapshot {
	s := &Snapshot{
		employees: make(map[string]models.Employee, len(employees)),
		stores:    make(map[string]models.Store, len(stores)),
		shifts:    make(map[string]models.Shift, len(shifts)),
		order:     make([]string, 0, len(shifts)),
	}
	for _, e := range employees {
		s.employees[e.ID] = e
	}
	for _, st := range stores {
		s.stores[st.ID] = st
	}
	for _, sh := range shifts {
		if _, ok := s.shifts[sh.ID]; !ok {
			s.order = append(s.order, sh.ID)
		}
		s.shifts[sh.ID] = sh
	}
	return s
}

// Employee looks up an employee by id
func (s *Snapshot) Employee(id string) (models.Employee, bool) {
	e, ok := s.employees[id]
	return e, ok
}

// Store looks up a store by id
func (s *Snapshot) Store(id string) (models.Store, bool) {
	st, ok := s.stores[id]
	return st, ok
}

// Shift looks up a shift by id
func (s *Snapshot) Shift(id string) (models.Shift, bool) {
	sh, ok := s.shifts[id]
	return sh, ok
}

// Shifts returns every shift in input order
func (s *Snapshot) Shifts() []models.Shift {
	out := make([]models.Shift, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.shifts[id])
	}
	return out
}

// Employees returns every employee
func (s *Snapshot) Employees() []models.Employee {
	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	return out
}

// Stores returns every store
func (s *Snapshot) Stores() []models.Store {
	out := make([]models.Store, 0, len(s.stores))
	for _, st := range s.stores {
		out = append(out, st)
	}
	return out
}

// ShiftsOf returns the shifts of an employee in input order
func (s *Snapshot) ShiftsOf(employeeID string) []models.Shift {
	var out []models.Shift
	for _, id := range s.order {
		if sh := s.shifts[id]; sh.EmployeeID == employeeID {
			out = append(out, sh)
		}
	}
	return out
}

// UnlockedShiftsOf returns the shifts of an employee that automation may move
func (s *Snapshot) UnlockedShiftsOf(employeeID string) []models.Shift {
	var out []models.Shift
	for _, sh := range s.ShiftsOf(employeeID) {
		if !sh.IsLocked {
			out = append(out, sh)
		}
	}
	return out
}

// WithUpdates returns a new snapshot with the update instructions applied.
// Updates naming unknown shifts are ignored.
func (s *Snapshot) WithUpdates(updates []models.ShiftUpdate) *Snapshot {
	next := &Snapshot{
		employees: s.employees,
		stores:    s.stores,
		shifts:    make(map[string]models.Shift, len(s.shifts)),
		order:     s.order,
	}
	for id, sh := range s.shifts {
		next.shifts[id] = sh
	}
	for _, u := range updates {
		if sh, ok := next.shifts[u.ID]; ok {
			next.shifts[u.ID] = u.Data.Apply(sh)
		}
	}
	return next
}
