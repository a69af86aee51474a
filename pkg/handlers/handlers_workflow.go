package handlers

import (
	"net/http"

	"github.com/arnavshah/workload-governance-go/pkg/metrics"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/arnavshah/workload-governance-go/pkg/workflow"
	"github.com/gin-gonic/gin"
)

// TransitionRequest moves posted shifts to a target status
type TransitionRequest struct {
	Shifts    []models.Shift          `json:"shifts"`
	Target    models.ValidationStatus `json:"target" binding:"required"`
	ActorRole models.Role             `json:"actor_role" binding:"required"`
	ActorName string                  `json:"actor_name"`
	Reason    string                  `json:"reason"`
}

// StoredTransitionRequest moves stored shifts to a target status as the logged in user
type StoredTransitionRequest struct {
	ShiftIDs []string                `json:"shift_ids" binding:"required"`
	Target   models.ValidationStatus `json:"target" binding:"required"`
	Reason   string                  `json:"reason"`
}

func (h *Handler) transition(req workflow.BulkRequest) models.TransitionResult {
	result := workflow.Transition(req, h.now())
	metrics.ObserveTransitions(result)
	return result
}

// Transition evaluates a bulk transition over the posted shifts
func (h *Handler) Transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.transition(workflow.BulkRequest{
		Shifts:    req.Shifts,
		Target:    req.Target,
		ActorRole: req.ActorRole,
		ActorName: req.ActorName,
		Reason:    req.Reason,
	})

	h.RecordUsage(c, len(req.Shifts), 0)
	c.JSON(http.StatusOK, result)
}

// TransitionStored applies a bulk transition to stored shifts and persists the successful ones
func (h *Handler) TransitionStored(c *gin.Context) {
	var req StoredTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shifts, err := h.Repo.LoadShifts(c.Request.Context(), req.ShiftIDs)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	result := h.transition(workflow.BulkRequest{
		Shifts:    shifts,
		Target:    req.Target,
		ActorRole: c.MustGet("role").(models.Role),
		ActorName: c.GetString("username"),
		Reason:    req.Reason,
	})

	if !h.persist(c, result.Successful) {
		return
	}
	c.JSON(http.StatusOK, result)
}

// AvailableTransitions lists the statuses the logged in user may move a shift to
func (h *Handler) AvailableTransitions(c *gin.Context) {
	shifts, err := h.Repo.LoadShifts(c.Request.Context(), []string{c.Param("id")})
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	current := workflow.Current(shifts[0])
	available := workflow.AvailableTransitions(current, c.MustGet("role").(models.Role))
	if available == nil {
		available = []models.ValidationStatus{}
	}
	c.JSON(http.StatusOK, gin.H{
		"shift_id":  shifts[0].ID,
		"current":   current,
		"available": available,
	})
}
