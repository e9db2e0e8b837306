package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrator routes
type AdminHandler struct {
	admin  usecase.AdminUseCase
	logger coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(admin usecase.AdminUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// ListUsers handles the GET /admin/users endpoint
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// SetCredits handles the PUT /admin/users/:id/credits endpoint.
// The amount comes from the credits query parameter or a JSON body.
func (h *AdminHandler) SetCredits(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	credits, err := requestedCredits(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.admin.SetCredits(c.Request.Context(), userID, credits)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Credits set by admin", map[string]any{
		"userId":  userID,
		"credits": credits,
		"adminId": adminID(c),
	})
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser handles the DELETE /admin/users/:id endpoint
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("User deleted by admin", map[string]any{
		"userId":  userID,
		"adminId": adminID(c),
	})
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("User %d deleted", userID)})
}

// Stats handles the GET /admin/stats endpoint
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSystemStatsResponse(stats))
}

func requestedCredits(c *gin.Context) (int64, error) {
	if raw, ok := c.GetQuery("credits"); ok {
		credits, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errs.NewValidationError("credits", raw, "must be an integer", nil)
		}
		return credits, nil
	}

	var req dto.SetCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return 0, bindError(err)
	}
	if req.Credits == nil {
		return 0, errs.NewValidationError("credits", nil, "is required", nil)
	}
	return *req.Credits, nil
}

func adminID(c *gin.Context) uint64 {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return 0
}
