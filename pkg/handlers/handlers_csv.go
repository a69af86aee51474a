package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/arnavshah/workload-governance-go/pkg/alerts"
	"github.com/arnavshah/workload-governance-go/pkg/formatter"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// row is one CSV record keyed by header name
type row map[string]string

func (r row) flag(col string, fallback bool) bool {
	v, ok := r[col]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

func (r row) number(col string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r[col]), 64)
	return f
}

func readCSV(header *multipart.FileHeader) ([]row, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", header.Filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	cols, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", header.Filename, err)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		r := make(row, len(cols))
		for i, name := range cols {
			if i < len(record) {
				r[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func parseEmployees(rows []row) []models.Employee {
	employees := make([]models.Employee, 0, len(rows))
	for _, r := range rows {
		employees = append(employees, models.Employee{
			ID:            r["id"],
			FirstName:     r["first_name"],
			LastName:      r["last_name"],
			ContractHours: r.number("contract_hours"),
			StoreID:       r["store_id"],
			IsActive:      r.flag("is_active", true),
		})
	}
	return employees
}

func parseStores(rows []row) []models.Store {
	stores := make([]models.Store, 0, len(rows))
	for _, r := range rows {
		stores = append(stores, models.Store{
			ID:       r["id"],
			Name:     r["name"],
			IsActive: r.flag("is_active", true),
		})
	}
	return stores
}

func parseShifts(rows []row) []models.Shift {
	shifts := make([]models.Shift, 0, len(rows))
	for _, r := range rows {
		breakMinutes, _ := strconv.Atoi(r["break_duration"])
		s := models.Shift{
			ID:               r["id"],
			EmployeeID:       r["employee_id"],
			StoreID:          r["store_id"],
			Date:             r["date"],
			StartTime:        r["start_time"],
			EndTime:          r["end_time"],
			BreakDuration:    breakMinutes,
			Status:           models.ShiftStatus(r["status"]),
			ValidationStatus: models.ValidationStatus(r["validation_status"]),
			IsLocked:         r.flag("is_locked", false),
		}
		if v := r["actual_hours"]; v != "" {
			if actual, err := strconv.ParseFloat(v, 64); err == nil {
				s.ActualHours = &actual
			}
		}
		shifts = append(shifts, s)
	}
	return shifts
}

// AlertsCSV evaluates a week uploaded as CSV files and returns the alerts as CSV
func (h *Handler) AlertsCSV(c *gin.Context) {
	employeesFile, _ := c.FormFile("employees_file")
	shiftsFile, _ := c.FormFile("shifts_file")
	storesFile, _ := c.FormFile("stores_file")

	if employeesFile == nil || shiftsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file and shifts_file are required"})
		return
	}

	weekStart, err := hours.ParseDay(c.PostForm("week_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return
	}

	employeeRows, err := readCSV(employeesFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shiftRows, err := readCSV(shiftsFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var stores []models.Store
	if storesFile != nil {
		storeRows, err := readCSV(storesFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		stores = parseStores(storeRows)
	}

	employees := parseEmployees(employeeRows)
	shifts := parseShifts(shiftRows)
	report := h.detect(alerts.Input{
		Employees: employees,
		Stores:    stores,
		Shifts:    shifts,
		Settings:  h.Config.Settings(nil),
		WeekStart: weekStart,
	})

	h.RecordUsage(c, len(shifts), len(employees))

	var outCSV strings.Builder
	if err := formatter.WriteCSV(&outCSV, report.Alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write alerts CSV"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"csv":          outCSV.String(),
		"summary":      report.Summary,
		"equity_score": report.EquityScore,
	})
}
