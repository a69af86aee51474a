package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/arnavshah/workload-governance-go/internal/snapshot"
	"github.com/arnavshah/workload-governance-go/pkg/balancing"
	"github.com/arnavshah/workload-governance-go/pkg/hours"
	"github.com/arnavshah/workload-governance-go/pkg/metrics"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// BalancingRequest applies one suggestion to a posted snapshot
type BalancingRequest struct {
	SnapshotInput
	Suggestion models.BalancingSuggestion `json:"suggestion"`
}

// BatchRequest applies suggestions in order to a posted snapshot
type BatchRequest struct {
	SnapshotInput
	Suggestions []models.BalancingSuggestion `json:"suggestions"`
	Rebase      bool                         `json:"rebase"`
}

// StoredBalancingRequest applies one suggestion to a stored week
type StoredBalancingRequest struct {
	WeekStart  string                     `json:"week_start" binding:"required"`
	Suggestion models.BalancingSuggestion `json:"suggestion"`
}

// StoredBatchRequest applies suggestions to a stored week
type StoredBatchRequest struct {
	WeekStart   string                       `json:"week_start" binding:"required"`
	Suggestions []models.BalancingSuggestion `json:"suggestions"`
	Rebase      bool                         `json:"rebase"`
}

func (h *Handler) engine(in SnapshotInput) *balancing.Engine {
	e := balancing.NewEngine(snapshot.New(in.Employees, in.Stores, in.Shifts))
	e.Now = h.now
	return e
}

func runBatch(e *balancing.Engine, suggestions []models.BalancingSuggestion, rebase bool) models.BatchResult {
	var result models.BatchResult
	if rebase {
		result = e.ApplyMultipleRebased(suggestions)
	} else {
		result = e.ApplyMultiple(suggestions)
	}
	metrics.ObserveBatch(result)
	return result
}

// loadStored builds the snapshot input for the week starting at the given day
func (h *Handler) loadStored(c *gin.Context, weekStart string) (SnapshotInput, bool) {
	start, err := hours.ParseDay(weekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return SnapshotInput{}, false
	}
	week, err := h.Repo.LoadWeek(c.Request.Context(), start, start.AddDate(0, 0, 6))
	if err != nil {
		log.Printf("load week %s: %v", weekStart, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load week"})
		return SnapshotInput{}, false
	}
	return SnapshotInput{Employees: week.Employees, Stores: week.Stores, Shifts: week.Shifts}, true
}

// ApplySuggestion runs one suggestion over the posted snapshot and returns the update instructions
func (h *Handler) ApplySuggestion(c *gin.Context) {
	var req BalancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.engine(req.SnapshotInput).Apply(req.Suggestion)
	metrics.ObserveBalancing(req.Suggestion, result)
	h.RecordUsage(c, len(req.Shifts), len(req.Employees))

	c.JSON(http.StatusOK, result)
}

// ApplyBatch runs suggestions over the posted snapshot
func (h *Handler) ApplyBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := runBatch(h.engine(req.SnapshotInput), req.Suggestions, req.Rebase)
	h.RecordUsage(c, len(req.Shifts), len(req.Employees))

	c.JSON(http.StatusOK, result)
}

// ApplyStoredSuggestion runs one suggestion over a stored week and persists its updates
func (h *Handler) ApplyStoredSuggestion(c *gin.Context) {
	var req StoredBalancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, ok := h.loadStored(c, req.WeekStart)
	if !ok {
		return
	}

	result := h.engine(in).Apply(req.Suggestion)
	metrics.ObserveBalancing(req.Suggestion, result)
	if !h.persist(c, result.Updates) {
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApplyStoredBatch runs suggestions over a stored week and persists every successful update
func (h *Handler) ApplyStoredBatch(c *gin.Context) {
	var req StoredBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, ok := h.loadStored(c, req.WeekStart)
	if !ok {
		return
	}

	result := runBatch(h.engine(in), req.Suggestions, req.Rebase)
	if !h.persist(c, result.Updates) {
		return
	}
	c.JSON(http.StatusOK, result)
}

// persist writes update instructions and reports whether the response may continue
func (h *Handler) persist(c *gin.Context, updates []models.ShiftUpdate) bool {
	started := time.Now()
	if err := h.Repo.ApplyUpdates(c.Request.Context(), updates); err != nil {
		log.Printf("persist %d shift updates: %v", len(updates), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return false
	}
	if len(updates) > 0 {
		log.Printf("persisted %d shift updates in %s", len(updates), time.Since(started))
	}
	return true
}
