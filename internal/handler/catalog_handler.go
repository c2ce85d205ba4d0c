package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type SetBannerActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CatalogHandler serves the storefront content managed from the console: banners and products.
type CatalogHandler struct {
	bannerService  service.BannerService
	productService service.ProductService
}

func NewCatalogHandler(bannerService service.BannerService, productService service.ProductService) *CatalogHandler {
	return &CatalogHandler{bannerService: bannerService, productService: productService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	banners := router.Group("/api/banners")
	banners.Use(middleware.RequireRole("admin"))
	{
		banners.GET("", h.ListBanners)
		banners.POST("", h.CreateBanner)
		banners.PUT("/:id", h.UpdateBanner)
		banners.PATCH("/:id/active", h.SetBannerActive)
		banners.DELETE("/:id", h.DeleteBanner)
	}

	products := router.Group("/api/products")
	products.Use(middleware.RequireRole("admin"))
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListBanners lists promotional banners
// @Summary      List banners
// @Tags         banners
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Banner}
// @Router       /api/banners [get]
func (h *CatalogHandler) ListBanners(c *gin.Context) {
	banners, err := h.bannerService.ListBanners(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, banners))
}

// CreateBanner creates a banner
// @Summary      Create banner
// @Tags         banners
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BannerRequest  true  "Banner"
// @Success      201      {object}  response.Response{data=model.Banner}
// @Failure      400      {object}  response.Response
// @Router       /api/banners [post]
func (h *CatalogHandler) CreateBanner(c *gin.Context) {
	var req service.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	banner, err := h.bannerService.CreateBanner(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, banner))
}

// UpdateBanner replaces a banner
// @Summary      Update banner
// @Tags         banners
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Banner id"
// @Param        payload  body      service.BannerRequest  true  "Banner"
// @Success      200      {object}  response.Response{data=model.Banner}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/banners/{id} [put]
func (h *CatalogHandler) UpdateBanner(c *gin.Context) {
	var req service.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	banner, err := h.bannerService.UpdateBanner(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, banner))
}

// SetBannerActive shows or hides a banner
// @Summary      Toggle banner
// @Tags         banners
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Banner id"
// @Param        payload  body      SetBannerActiveRequest  true  "Visibility"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/banners/{id}/active [patch]
func (h *CatalogHandler) SetBannerActive(c *gin.Context) {
	var req SetBannerActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.bannerService.SetActive(c.Request.Context(), middleware.ActorID(c), c.Param("id"), *req.IsActive); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Banner updated"}))
}

// DeleteBanner removes a banner
// @Summary      Delete banner
// @Tags         banners
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Banner id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/banners/{id} [delete]
func (h *CatalogHandler) DeleteBanner(c *gin.Context) {
	if err := h.bannerService.DeleteBanner(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Banner deleted successfully"}))
}

// ListProducts lists catalog products
// @Summary      List products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        category  query     string  false  "Category or all"
// @Param        search    query     string  false  "Name"
// @Success      200       {object}  response.Response{data=[]model.Product}
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), service.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// CreateProduct creates a product
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ProductRequest  true  "Product"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// UpdateProduct replaces a product
// @Summary      Update product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Product id"
// @Param        payload  body      service.ProductRequest  true  "Product"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct removes a product
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Product deleted successfully"}))
}
