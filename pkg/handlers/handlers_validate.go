package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateSuggestion runs the conflict checks for a suggestion without applying it
func (h *Handler) ValidateSuggestion(c *gin.Context) {
	var req BalancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Check for duplicate IDs
	employeeIDs := make(map[string]bool)
	for _, e := range req.Employees {
		if employeeIDs[e.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate employee ID: " + e.ID})
			return
		}
		employeeIDs[e.ID] = true
	}

	shiftIDs := make(map[string]bool)
	for _, s := range req.Shifts {
		if shiftIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate shift ID: " + s.ID})
			return
		}
		shiftIDs[s.ID] = true
	}

	result, err := h.engine(req.SnapshotInput).Validate(req.Suggestion)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	h.RecordUsage(c, len(req.Shifts), len(req.Employees))
	c.JSON(http.StatusOK, gin.H{
		"valid":      result.IsValid,
		"validation": result,
	})
}
