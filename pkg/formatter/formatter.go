// Package formatter renders alert reports and balancing results for terminals and files.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/workload-governance-go/pkg/alerts"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	severityStyle = map[models.Severity]lipgloss.Style{
		models.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		models.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true),
		models.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
		models.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
	}
)

// CSVHeader is the column layout of FormatCSV
var CSVHeader = []string{"id", "type", "severity", "employee_id", "employee_name", "store_id", "store_name", "current_value", "threshold_value", "message"}

// FormatText returns the styled text representation of a report
func FormatText(r alerts.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Workload report %s to %s", r.WeekStart, r.WeekEnd)))
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(fmt.Sprintf("Equity score %s, %d alerts", hours.Format(r.EquityScore), r.Summary.Total)))

	fmt.Fprintf(&b, "%s\n", headingStyle.Render("Alerts"))
	if len(r.Alerts) == 0 {
		fmt.Fprintf(&b, "  %s\n", successStyle.Render("No alerts"))
	}
	for _, a := range r.Alerts {
		label := severityStyle[a.Severity].Render(fmt.Sprintf("%-8s", strings.ToUpper(string(a.Severity))))
		fmt.Fprintf(&b, "  %s %s\n", label, a.Message)
	}

	if len(r.Workloads) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Employees"))
		for _, w := range r.Workloads {
			fmt.Fprintf(&b, "  %-24s %6sh / %sh  %s%%\n", w.Name, hours.Format(w.TotalHours), hours.Format(w.ContractHours), hours.Format(w.Utilization))
		}
	}

	if len(r.Stores) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Stores"))
		for _, s := range r.Stores {
			fmt.Fprintf(&b, "  %-24s %6sh\n", s.Name, hours.Format(s.Hours))
		}
	}

	return b.String()
}

// FormatJSON returns the indented JSON representation of a report
func FormatJSON(r alerts.Report) string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}\n", err.Error())
	}
	return string(data) + "\n"
}

// WriteCSV writes one row per alert
func WriteCSV(w io.Writer, list []models.WorkloadAlert) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range list {
		err := writer.Write([]string{
			a.ID,
			string(a.Type),
			string(a.Severity),
			a.EmployeeID,
			a.EmployeeName,
			a.StoreID,
			a.StoreName,
			hours.Format(a.CurrentValue),
			hours.Format(a.ThresholdValue),
			a.Message,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatCSV returns the alerts of a report as CSV
func FormatCSV(r alerts.Report) string {
	var b strings.Builder
	if err := WriteCSV(&b, r.Alerts); err != nil {
		return ""
	}
	return b.String()
}

// FormatBatch summarizes a batch application
func FormatBatch(batch models.BatchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Balancing"))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("%d of %d suggestions applied, %d shifts moved, %sh redistributed",
		batch.Summary.Successful, batch.Summary.Total, batch.Summary.TotalShiftsModified, hours.Format(batch.Summary.TotalHoursRedistributed))))

	for _, item := range batch.Successful {
		fmt.Fprintf(&b, "  %s #%d %s %s -> %s\n", successStyle.Render("OK  "), item.Index, item.Suggestion.Type,
			item.Suggestion.SourceEmployeeID, item.Suggestion.TargetEmployeeID)
	}
	for _, item := range batch.Failed {
		fmt.Fprintf(&b, "  %s #%d %s: %s\n", failureStyle.Render("FAIL"), item.Index, item.Suggestion.Type,
			strings.Join(item.Result.Errors, "; "))
	}
	return b.String()
}
