package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type StatisticsHandler struct {
	dashboardService service.DashboardService
}

func NewStatisticsHandler(dashboardService service.DashboardService) *StatisticsHandler {
	return &StatisticsHandler{dashboardService: dashboardService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/statistics")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.GetDashboard)
	}
}

// GetDashboard returns every summary of the console home screen
// @Summary      Dashboard
// @Description  Current month revenue and top products, plus order, user, voucher and review statistics
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
