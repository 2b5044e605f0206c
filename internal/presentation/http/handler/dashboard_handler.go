package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns the cached cross-module dashboard summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

// Refresh rebuilds the summary, bypassing the cache
func (h *DashboardHandler) Refresh(c *gin.Context) {
	summary, err := h.dashboardService.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary refreshed successfully", summary)
}
