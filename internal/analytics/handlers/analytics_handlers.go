package handlers

import (
	"github.com/architect/kidlearn/internal/analytics/models"
	"github.com/architect/kidlearn/internal/analytics/services"
	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/common/middleware"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *services.Service
}

func NewAnalyticsHandler(service *services.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetUserAnalytics retrieves a user's full analytics record
func (h *AnalyticsHandler) GetUserAnalytics(c *gin.Context) {
	resp, err := h.service.GetAnalytics(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, resp)
}

// RecordActivity records one activity outcome for a user
func (h *AnalyticsHandler) RecordActivity(c *gin.Context) {
	var req models.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("module name is required"))
		return
	}

	record, err := h.service.RecordActivity(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message":   "activity recorded successfully",
		"analytics": record,
	})
}

// StartSession starts a new learning session for a user
func (h *AnalyticsHandler) StartSession(c *gin.Context) {
	session, err := h.service.StartSession(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message": "session started successfully",
		"session": session,
	})
}

// AddMilestone appends a milestone to a user's record
func (h *AnalyticsHandler) AddMilestone(c *gin.Context) {
	var req models.AddMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("title and type are required for a milestone"))
		return
	}

	milestones, err := h.service.AddMilestone(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message":    "milestone added successfully",
		"milestones": milestones,
	})
}

// GetRecommendations derives practice recommendations for a user
func (h *AnalyticsHandler) GetRecommendations(c *gin.Context) {
	resp, err := h.service.GetRecommendations(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, resp)
}

// GetParentalSummary builds the parent-facing summary for a user
func (h *AnalyticsHandler) GetParentalSummary(c *gin.Context) {
	summary, err := h.service.GetParentalSummary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, summary)
}
