package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard, notification and notes requests
type DashboardHandler struct {
	dashboardService  *service.DashboardService
	preferenceService *service.PreferenceService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, preferenceService *service.PreferenceService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		preferenceService: preferenceService,
	}
}

// GetStats handles getting the dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// Refresh recomputes and republishes the analytics
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snapshot, err := h.dashboardService.RefreshAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analytics refreshed successfully", snapshot)
}

// GetNotes returns the dashboard notes
func (h *DashboardHandler) GetNotes(c *gin.Context) {
	notes, err := h.preferenceService.GetDashboardNotes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes retrieved successfully", gin.H{"notes": notes})
}

// SaveNotes replaces the dashboard notes
func (h *DashboardHandler) SaveNotes(c *gin.Context) {
	var req request.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.preferenceService.SaveDashboardNotes(c.Request.Context(), req.Notes); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes saved successfully", gin.H{"notes": req.Notes})
}

// ListNotifications lists notifications, optionally only unread ones
func (h *DashboardHandler) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.dashboardService.ListNotifications(c.Request.Context(), unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications retrieved successfully", notifications)
}

// MarkNotificationRead marks one notification as read
func (h *DashboardHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.dashboardService.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notification marked as read", nil)
}

// MarkAllNotificationsRead marks every notification as read
func (h *DashboardHandler) MarkAllNotificationsRead(c *gin.Context) {
	count, err := h.dashboardService.MarkAllNotificationsRead(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications marked as read", gin.H{"marked": count})
}
