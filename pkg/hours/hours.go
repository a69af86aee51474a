// Package hours computes worked hours from shift records.
package hours

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/shopspring/decimal"
)

// DayLayout is the calendar-day format used by shift dates
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date into a UTC midnight
func ParseDay(value string) (time.Time, error) {
	return time.Parse(DayLayout, strings.TrimSpace(value))
}

// Day truncates t to its calendar day in UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseClock parses an HH:MM or HH:MM:SS time of day into minutes after midnight
func ParseClock(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// DurationHours returns the gross span between two times of day minus the break.
// An end earlier than start crosses midnight. The result is never negative.
func DurationHours(start, end string, breakMinutes int) float64 {
	startMin, ok := ParseClock(start)
	if !ok {
		return 0
	}
	endMin, ok := ParseClock(end)
	if !ok {
		return 0
	}

	// Handle overnight shifts (e.g., 22:00 to 06:00)
	if endMin < startMin {
		endMin += 24 * 60
	}

	worked := endMin - startMin - breakMinutes
	if worked <= 0 {
		return 0
	}
	return float64(worked) / 60.0
}

// ShiftHours returns the hours of a shift, preferring the recorded actual hours
func ShiftHours(s models.Shift) float64 {
	if s.ActualHours != nil {
		if *s.ActualHours < 0 {
			return 0
		}
		return *s.ActualHours
	}
	return DurationHours(s.StartTime, s.EndTime, s.BreakDuration)
}

// InPeriod reports whether the shift date falls in [start, end], both inclusive.
// Shifts with an unparsable date are never in any period.
func InPeriod(s models.Shift, start, end time.Time) bool {
	day, err := ParseDay(s.Date)
	if err != nil {
		return false
	}
	return !day.Before(Day(start)) && !day.After(Day(end))
}

// WeeklyHours sums the hours an employee works within the period
func WeeklyHours(employeeID string, shifts []models.Shift, periodStart, periodEnd time.Time) float64 {
	var total float64
	for _, s := range shifts {
		if s.EmployeeID != employeeID || !InPeriod(s, periodStart, periodEnd) {
			continue
		}
		total += ShiftHours(s)
	}
	return total
}

// StoreHours sums the hours worked in a store within the period
func StoreHours(storeID string, shifts []models.Shift, periodStart, periodEnd time.Time) float64 {
	var total float64
	for _, s := range shifts {
		if s.StoreID != storeID || !InPeriod(s, periodStart, periodEnd) {
			continue
		}
		total += ShiftHours(s)
	}
	return total
}

// ConsecutiveWorkDays returns the longest run of calendar days, each one day after
// the previous, on which any of the shifts takes place.
func ConsecutiveWorkDays(shifts []models.Shift) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, s := range shifts {
		day, err := ParseDay(s.Date)
		if err != nil || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// Round rounds hours half away from zero for display
func Round(h float64, places int32) float64 {
	return decimal.NewFromFloat(h).Round(places).InexactFloat64()
}

// Format renders hours with at most one decimal, e.g. "7.5" or "40"
func Format(h float64) string {
	return decimal.NewFromFloat(h).Round(1).String()
}
