package rest

import (
	"context"
	"net/http"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuditLogService interface {
	FindByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditLog, error)
}

type AuditLogHandler struct {
	auditService AuditLogService
	timeout      time.Duration
}

func NewAuditLogHandler(auditService AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{
		auditService: auditService,
		timeout:      10 * time.Second,
	}
}

func (h *AuditLogHandler) GetByEntity(c echo.Context) error {
	entity := c.QueryParam("entity")
	entityID := c.QueryParam("entityId")

	if entity == "" || entityID == "" {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "entity and entityId are required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entries, err := h.auditService.FindByEntity(ctx, entity, entityID)
	if err != nil {
		logger.Error("failed to find audit logs", "entity", entity, "entity_id", entityID, err)
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
