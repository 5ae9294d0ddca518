package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/middleware"
	"github.com/arjun-dev21/teamforge/internal/service"
)

type WorkspaceHandler struct {
	workspaces *service.Workspace
	logger     *zap.Logger
}

func NewWorkspaceHandler(workspaces *service.Workspace, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, logger: logger}
}

type createWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type joinWorkspaceRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

// Create handles POST /v1/workspaces
// The owner is always the authenticated caller, never a request field.
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaces.Create(c.Request.Context(), service.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		Owner:       middleware.GetUserID(c),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}

// List handles GET /v1/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaces.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, workspaces)
}

// Mine handles GET /v1/workspaces/mine — the workspaces the caller is a
// member of.
func (h *WorkspaceHandler) Mine(c *gin.Context) {
	workspaces, err := h.workspaces.ListForMember(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, workspaces)
}

// GetByID handles GET /v1/workspaces/:id
func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	ws, err := h.workspaces.GetByID(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// GetByName handles GET /v1/workspaces/name/:name
func (h *WorkspaceHandler) GetByName(c *gin.Context) {
	ws, err := h.workspaces.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if ws == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}

	c.JSON(http.StatusOK, ws)
}

// Delete handles DELETE /v1/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return
	}

	if err := h.workspaces.DeleteByID(c.Request.Context(), workspaceID, middleware.GetUserID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join handles POST /v1/workspaces/join — join-code redemption.
func (h *WorkspaceHandler) Join(c *gin.Context) {
	var req joinWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaces.JoinByCode(c.Request.Context(), req.JoinCode, middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}
