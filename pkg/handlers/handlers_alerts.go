package handlers

import (
	"net/http"

	"github.com/arnavshah/workload-governance-go/pkg/alerts"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/metrics"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotInput is the record set posted to stateless engine routes
type SnapshotInput struct {
	Employees []models.Employee `json:"employees"`
	Stores    []models.Store    `json:"stores"`
	Shifts    []models.Shift    `json:"shifts"`
}

// AlertsRequest asks for the alerts of one week
type AlertsRequest struct {
	SnapshotInput
	Settings  *models.ValidationAdminSettings `json:"settings"`
	WeekStart string                          `json:"week_start" binding:"required"`
}

func (h *Handler) detect(in alerts.Input) alerts.Report {
	timer := prometheus.NewTimer(metrics.EvaluationDurationSeconds)
	defer timer.ObserveDuration()

	d := alerts.NewDetector()
	d.Now = h.now
	report := d.Detect(in)
	metrics.ObserveAlerts(report.Alerts, report.EquityScore)
	return report
}

// AlertsJSON evaluates the posted week and returns the ranked alerts
func (h *Handler) AlertsJSON(c *gin.Context) {
	var req AlertsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart, err := hours.ParseDay(req.WeekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return
	}

	report := h.detect(alerts.Input{
		Employees: req.Employees,
		Stores:    req.Stores,
		Shifts:    req.Shifts,
		Settings:  h.Config.Settings(req.Settings),
		WeekStart: weekStart,
	})

	h.RecordUsage(c, len(req.Shifts), len(req.Employees))
	c.JSON(http.StatusOK, report)
}

// WeekAlerts evaluates a stored week
func (h *Handler) WeekAlerts(c *gin.Context) {
	weekStart, err := hours.ParseDay(c.Param("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week start must be YYYY-MM-DD"})
		return
	}

	week, err := h.Repo.LoadWeek(c.Request.Context(), weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load week"})
		return
	}

	report := h.detect(alerts.Input{
		Employees: week.Employees,
		Stores:    week.Stores,
		Shifts:    week.Shifts,
		Settings:  h.Config.Settings(nil),
		WeekStart: weekStart,
	})
	c.JSON(http.StatusOK, report)
}
