package handlers

import (
	"net/http"

	"github.com/arnavshah/workload-governance-go/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the root route
const Version = "1.0.0"

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Workload Governance API",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)

		admin.GET("/weeks/:start/alerts", h.WeekAlerts)
		admin.POST("/balancing/apply", h.ApplyStoredSuggestion)
		admin.POST("/balancing/batch", h.ApplyStoredBatch)
		admin.POST("/workflow/transition", h.TransitionStored)
		admin.GET("/shifts/:id/transitions", h.AvailableTransitions)
	}

	// Engine Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/alerts", h.AlertsJSON)
		api.POST("/alerts/csv", h.AlertsCSV)
		api.POST("/validate", h.ValidateSuggestion)
		api.POST("/balancing/apply", h.ApplySuggestion)
		api.POST("/balancing/batch", h.ApplyBatch)
		api.POST("/workflow/transition", h.Transition)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
