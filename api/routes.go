package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internalapi "design_ai_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *internalapi.APIHandler, storeKind string) {

	// --- One-shot generation ---
	router.POST("/api/generate", h.GeneratePage)
	router.POST("/api/refine", h.RefineDesign)

	// --- Project Lifecycle ---
	// Multi-page runs: initialize a session, step it page by page, query it.
	projectGroup := router.Group("/api/project")
	{
		projectGroup.POST("/init", h.InitProject)
		projectGroup.POST("/:id/generate", h.GenerateProjectPage)
		projectGroup.GET("/:id/status", h.ProjectStatus)
		projectGroup.GET("/:id/next", h.NextPage)
		projectGroup.DELETE("/:id", h.ExpireProject)
	}

	// --- Plugin intake ---
	router.POST("/api/selection", h.PostSelection)

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": storeKind})
	})
}
