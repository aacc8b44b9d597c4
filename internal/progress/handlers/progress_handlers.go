package handlers

import (
	"strconv"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/common/middleware"
	"github.com/architect/kidlearn/internal/progress/models"
	"github.com/architect/kidlearn/internal/progress/services"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	service *services.Service
}

func NewProgressHandler(service *services.Service) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// GetProgress retrieves a user's progress record
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	record, err := h.service.GetProgress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, record)
}

// UpdateProgress applies a module progress update and awards stars
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("module and progress value are required"))
		return
	}

	record, err := h.service.ApplyModuleProgress(
		c.Request.Context(),
		c.Param("userId"),
		req.Module,
		*req.ProgressValue,
		req.IsCompleted,
	)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, record)
}

// ResetProgress replaces the user's progress with zeroed defaults
func (h *ProgressHandler) ResetProgress(c *gin.Context) {
	record, err := h.service.ResetProgress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message":  "progress reset successfully",
		"progress": record,
	})
}

// GetLeaderboard retrieves the top users by stars
func (h *ProgressHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"leaderboard": leaderboard,
		"total":       len(leaderboard),
	})
}
