package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type VoucherHandler struct {
	voucherService service.VoucherService
}

func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

func (h *VoucherHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/vouchers")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.ListVouchers)
		group.GET("/stats", h.GetStats)
		group.POST("", h.CreateVoucher)
		group.PUT("/:id", h.UpdateVoucher)
		group.DELETE("/:id", h.DeleteVoucher)
	}
}

// ListVouchers lists vouchers with their effective status
// @Summary      List vouchers
// @Tags         vouchers
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "active, inactive, expired or all"
// @Param        search  query     string  false  "Code or title"
// @Success      200     {object}  response.Response{data=[]model.Voucher}
// @Router       /api/vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), service.VoucherQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vouchers))
}

// GetStats counts vouchers per effective status
// @Summary      Voucher statistics
// @Tags         vouchers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.VoucherStats}
// @Router       /api/vouchers/stats [get]
func (h *VoucherHandler) GetStats(c *gin.Context) {
	stats, err := h.voucherService.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// CreateVoucher creates a voucher
// @Summary      Create voucher
// @Description  The code is upper-cased and must be unique
// @Tags         vouchers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.VoucherRequest  true  "Voucher"
// @Success      201      {object}  response.Response{data=model.Voucher}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vouchers [post]
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req service.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, voucher))
}

// UpdateVoucher replaces a voucher
// @Summary      Update voucher
// @Tags         vouchers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Voucher id"
// @Param        payload  body      service.VoucherRequest  true  "Voucher"
// @Success      200      {object}  response.Response{data=model.Voucher}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vouchers/{id} [put]
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	var req service.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, voucher))
}

// DeleteVoucher removes a voucher
// @Summary      Delete voucher
// @Tags         vouchers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Voucher id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vouchers/{id} [delete]
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	if err := h.voucherService.DeleteVoucher(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Voucher deleted successfully"}))
}
