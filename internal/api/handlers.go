package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"design_ai_server/internal/design"
	"design_ai_server/internal/dump"
	"design_ai_server/internal/project"
	"design_ai_server/internal/types"
	"design_ai_server/internal/utils"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	service   *Service
	manager   *project.Manager
	dumper    *dump.Dumper
	storeKind string
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(service *Service, manager *project.Manager, dumper *dump.Dumper, storeKind string) *APIHandler {
	return &APIHandler{
		service:   service,
		manager:   manager,
		dumper:    dumper,
		storeKind: storeKind,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	PageType string `json:"page_type"`
}

type GenerateResponse struct {
	Document *design.Document `json:"document"`
	Source   string           `json:"source"` // primary | fallback | default
}

type InitProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Pages       []string `json:"pages"`
}

type InitProjectResponse struct {
	ProjectID string   `json:"project_id"`
	Pages     []string `json:"pages"`
}

type ProjectPageResponse struct {
	Done       bool             `json:"done"`
	PageType   string           `json:"page_type,omitempty"`
	Document   *design.Document `json:"document,omitempty"`
	Source     string           `json:"source,omitempty"`
	PagesBuilt int              `json:"pages_built"`
	Pending    int              `json:"pending"`
}

type NextPageResponse struct {
	Done     bool   `json:"done"`
	PageType string `json:"page_type,omitempty"`
}

type RefineRequest struct {
	Instruction string           `json:"instruction" binding:"required"`
	Document    *design.Document `json:"document" binding:"required"`
}

type RefineResponse struct {
	Document *design.Document `json:"document"`
}

// --- API Handlers ---

// POST /api/generate
func (h *APIHandler) GeneratePage(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	pageType := utils.NormalizePageType(req.PageType)
	log.Printf("Received one-shot generation request (page type %s)", pageType)

	doc, source := h.service.GenerateDocument(c.Request.Context(), requestID(c), req.Prompt, pageType)
	c.JSON(http.StatusOK, GenerateResponse{Document: doc, Source: source})
}

// POST /api/project/init
func (h *APIHandler) InitProject(c *gin.Context) {
	var req InitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	for i, p := range req.Pages {
		req.Pages[i] = utils.NormalizePageType(p)
	}

	sess, err := h.manager.Initialize(c.Request.Context(), req.Name, req.Description, req.Pages)
	if err != nil {
		log.Printf("Error initializing project %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize project"})
		return
	}

	c.JSON(http.StatusCreated, InitProjectResponse{
		ProjectID: sess.ID,
		Pages:     sess.PendingPages,
	})
}

// POST /api/project/:id/generate
func (h *APIHandler) GenerateProjectPage(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.GenerateProjectPage(c.Request.Context(), requestID(c), id)
	if err != nil {
		respondSessionError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, ProjectPageResponse{
		Done:       result.Done,
		PageType:   result.PageType,
		Document:   result.Document,
		Source:     result.Source,
		PagesBuilt: result.PagesBuilt,
		Pending:    result.Pending,
	})
}

// GET /api/project/:id/status
func (h *APIHandler) ProjectStatus(c *gin.Context) {
	id := c.Param("id")

	snap, err := h.manager.Status(c.Request.Context(), id)
	if err != nil {
		respondSessionError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /api/project/:id/next
func (h *APIHandler) NextPage(c *gin.Context) {
	id := c.Param("id")

	next, err := h.manager.NextPageType(c.Request.Context(), id)
	if err != nil {
		respondSessionError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, NextPageResponse{Done: next == "", PageType: next})
}

// DELETE /api/project/:id
func (h *APIHandler) ExpireProject(c *gin.Context) {
	id := c.Param("id")

	if err := h.manager.Expire(c.Request.Context(), id); err != nil {
		log.Printf("Error expiring project %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expire project"})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/refine
func (h *APIHandler) RefineDesign(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	refined, err := h.service.RefineDocument(c.Request.Context(), requestID(c), req.Instruction, req.Document)
	if err != nil {
		log.Printf("Error refining design: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refine design"})
		return
	}
	c.JSON(http.StatusOK, RefineResponse{Document: refined})
}

// POST /api/selection
func (h *APIHandler) PostSelection(c *gin.Context) {
	// Read the body once so the raw bytes are still available for dumping.
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var payload types.SelectionExport
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection payload: " + err.Error()})
		return
	}
	if len(payload.Nodes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selection contains no nodes"})
		return
	}

	log.Printf("Received selection export: %d node(s) from page %q", len(payload.Nodes), payload.PageName)
	h.dumper.Save(requestID(c), "selection.json", string(raw))

	c.JSON(http.StatusAccepted, gin.H{"received": len(payload.Nodes)})
}

// respondSessionError maps the session sentinels onto HTTP statuses. Unknown
// and expired sessions look identical to callers: 404.
func respondSessionError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, project.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found or expired"})
	case errors.Is(err, project.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "Project already completed"})
	default:
		log.Printf("Error handling project %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
