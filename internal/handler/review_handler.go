package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/reviews")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.ListReviews)
		group.GET("/stats", h.GetStats)
		group.DELETE("/:id", h.DeleteReview)
	}
}

// ListReviews lists reviews, newest first
// @Summary      List reviews
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        rating  query     int     false  "Only this rating (1-5)"
// @Param        search  query     string  false  "Comment, product or reviewer"
// @Success      200     {object}  response.Response{data=[]model.Review}
// @Failure      400     {object}  response.Response
// @Router       /api/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	rating, err := queryInt(c, "rating")
	if err != nil || rating < 0 || rating > 5 {
		badRequest(c, "rating must be between 1 and 5")
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), service.ReviewQuery{Rating: rating, Search: c.Query("search")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// GetStats averages ratings
// @Summary      Review statistics
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.ReviewStats}
// @Router       /api/reviews/stats [get]
func (h *ReviewHandler) GetStats(c *gin.Context) {
	stats, err := h.reviewService.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// DeleteReview removes a review
// @Summary      Delete review
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.DeleteReview(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Review deleted successfully"}))
}
