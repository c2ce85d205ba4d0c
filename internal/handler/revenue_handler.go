package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type RevenueHandler struct {
	revenueService service.RevenueService
	reportService  service.ReportService
}

func NewRevenueHandler(revenueService service.RevenueService, reportService service.ReportService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService, reportService: reportService}
}

func (h *RevenueHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/revenue")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.ListRecords)
		group.GET("/stats", h.GetStats)
		group.GET("/daily", h.GetDailyRevenue)
		group.GET("/products", h.GetProductStats)
		group.GET("/categories", h.GetCategoryStats)
		group.GET("/export", h.Export)
	}
}

// ListRecords returns the revenue rows matching the filter
// @Summary      List revenue records
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        month     query     int     false  "Month 1-12"
// @Param        year      query     int     false  "Year"
// @Param        category  query     string  false  "Product category or all"
// @Success      200       {object}  response.Response{data=[]model.RevenueRecord}
// @Failure      400       {object}  response.Response
// @Router       /api/revenue [get]
func (h *RevenueHandler) ListRecords(c *gin.Context) {
	filter, err := parseRevenueFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	records, err := h.revenueService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// GetStats summarizes revenue
// @Summary      Revenue summary
// @Description  Total revenue, distinct orders and units sold over the filtered rows
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        month     query     int     false  "Month 1-12"
// @Param        year      query     int     false  "Year"
// @Param        category  query     string  false  "Product category or all"
// @Success      200       {object}  response.Response{data=model.RevenueStats}
// @Failure      400       {object}  response.Response
// @Router       /api/revenue/stats [get]
func (h *RevenueHandler) GetStats(c *gin.Context) {
	filter, err := parseRevenueFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.revenueService.GetStats(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetDailyRevenue returns one bucket per day of the month
// @Summary      Daily revenue series
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        month  query     int  false  "Month 1-12 (default current)"
// @Param        year   query     int  false  "Year (default current)"
// @Success      200    {object}  response.Response{data=[]model.DailyRevenue}
// @Failure      400    {object}  response.Response
// @Router       /api/revenue/daily [get]
func (h *RevenueHandler) GetDailyRevenue(c *gin.Context) {
	month, year, err := monthOrCurrent(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	daily, err := h.revenueService.GetDailyRevenue(c.Request.Context(), month, year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, daily))
}

// GetProductStats ranks products by revenue
// @Summary      Revenue per product
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        month         query     int     false  "Month 1-12"
// @Param        year          query     int     false  "Year"
// @Param        category      query     string  false  "Product category or all"
// @Param        limit         query     int     false  "Keep the top N products"
// @Param        label_budget  query     int     false  "Chart label length (default 12)"
// @Success      200           {object}  response.Response{data=[]model.ProductStats}
// @Failure      400           {object}  response.Response
// @Router       /api/revenue/products [get]
func (h *RevenueHandler) GetProductStats(c *gin.Context) {
	filter, err := parseRevenueFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	budget, err := queryInt(c, "label_budget")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.revenueService.GetProductStats(c.Request.Context(), service.ProductStatsQuery{
		Filter:      filter,
		Limit:       limit,
		LabelBudget: budget,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetCategoryStats ranks categories by revenue
// @Summary      Revenue per category
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        month  query     int  false  "Month 1-12"
// @Param        year   query     int  false  "Year"
// @Success      200    {object}  response.Response{data=[]model.CategoryStats}
// @Failure      400    {object}  response.Response
// @Router       /api/revenue/categories [get]
func (h *RevenueHandler) GetCategoryStats(c *gin.Context) {
	filter, err := parseRevenueFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.revenueService.GetCategoryStats(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// Export downloads the monthly revenue report
// @Summary      Export revenue report
// @Tags         revenue
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        month   query     int     false  "Month 1-12 (default current)"
// @Param        year    query     int     false  "Year (default current)"
// @Param        format  query     string  false  "xlsx or pdf (default xlsx)"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Router       /api/revenue/export [get]
func (h *RevenueHandler) Export(c *gin.Context) {
	month, year, err := monthOrCurrent(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	report, err := h.reportService.ExportRevenue(c.Request.Context(), month, year, c.Query("format"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+report.Filename)
	c.Data(http.StatusOK, report.ContentType, report.Body)
}
