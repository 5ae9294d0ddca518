package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/middleware"
	"github.com/arjun-dev21/teamforge/internal/service"
)

type UserHandler struct {
	users  *service.User
	logger *zap.Logger
}

func NewUserHandler(users *service.User, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// GetMe handles GET /v1/users/me — the authenticated caller's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ChangePassword handles PUT /v1/users/me/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.Password); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
