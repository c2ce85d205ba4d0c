package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
	"github.com/Vileyy/admin-halora-app/pkg/response"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(middleware.RequireRole("admin"))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs lists admin actions, newest first
// @Summary      Get audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action     query     string  false  "Action, e.g. UPDATE_ORDER_STATUS"
// @Param        entity_id  query     string  false  "Id of the changed entity"
// @Param        admin_id   query     string  false  "Id of the acting admin"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Success      200        {object}  response.Response{data=response.Page}
// @Failure      400        {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)
	query := service.AuditQuery{
		Action:   c.Query("action"),
		EntityID: c.Query("entity_id"),
		AdminID:  c.Query("admin_id"),
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), query, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, total, params.Page, params.Limit))
}
