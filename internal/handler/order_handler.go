package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/orders")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.ListOrders)
		group.GET("/stats", h.GetStats)
		group.GET("/:userId/:orderId", h.GetOrder)
		group.PATCH("/:userId/:orderId/status", h.UpdateStatus)
	}
}

// ListOrders lists orders across all users
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        status          query     string  false  "pending, processing, shipping, delivered, cancelled or all"
// @Param        payment_method  query     string  false  "cod, vnpay, zalopay or all"
// @Param        start_date      query     string  false  "Created at or after (RFC3339 or YYYY-MM-DD)"
// @Param        end_date        query     string  false  "Created at or before (RFC3339 or YYYY-MM-DD)"
// @Param        search          query     string  false  "Order id, customer name, email or item name"
// @Param        sort_by         query     string  false  "createdAt, totalAmount or status"
// @Param        sort_order      query     string  false  "asc or desc (default desc)"
// @Param        page            query     int     false  "Page number (default 1)"
// @Param        limit           query     int     false  "Items per page (default 20)"
// @Success      200             {object}  response.Response{data=response.Page}
// @Failure      400             {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := analytics.OrderFilter{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		SearchTerm:    c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
	}

	dateRange, msg := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if msg != "" {
		badRequest(c, msg)
		return
	}
	filter.DateRange = dateRange

	params := pagination.Parse(c)
	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, orders, int64(total), params.Page, params.Limit))
}

// GetStats counts orders per status
// @Summary      Order statistics
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.OrderStats}
// @Router       /api/orders/stats [get]
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetOrder returns one order
// @Summary      Get order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        userId   path      string  true  "Owner uid"
// @Param        orderId  path      string  true  "Order id"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{userId}/{orderId} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("userId"), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateStatus moves an order to a new status
// @Summary      Update order status
// @Description  Delivered orders are recorded as revenue. Delivered and cancelled orders are final.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId   path      string                    true  "Owner uid"
// @Param        orderId  path      string                    true  "Order id"
// @Param        payload  body      UpdateOrderStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/orders/{userId}/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.ActorID(c), c.Param("userId"), c.Param("orderId"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}
