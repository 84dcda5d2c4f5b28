package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/middleware"
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

type auditLister interface {
	List(ctx context.Context, query models.ListQuery) ([]models.AuditLog, *models.Pagination, error)
}

// AuditHandler exposes the audit trail to super admins.
type AuditHandler struct {
	audit auditLister
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(audit auditLister) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// @Summary List audit logs
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param action query string false "Filter by action"
// @Param resource query string false "Filter by resource"
// @Success 200 {object} response.Envelope
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	logs, pagination, err := h.audit.List(c.Request.Context(), listQuery(middleware.Query(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Audit logs retrieved successfully", logs, pagination)
}
