package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/metrics"

	"gorm.io/datatypes"
)

// AuditLogRepository contract interface
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	FindByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditLog, error)
}

type auditLogService struct {
	auditRepo AuditLogRepository
}

func NewAuditLogService(auditRepo AuditLogRepository) *auditLogService {
	return &auditLogService{
		auditRepo: auditRepo,
	}
}

// Record appends exactly one immutable row. The id and timestamp are assigned
// by the store. Whether before/after must be present for a given action is the
// caller's responsibility; the recorder only rejects structurally bad input.
// A failed store write propagates unmodified so the caller can abort the
// triggering mutation.
func (s *auditLogService) Record(ctx context.Context, entity, entityID string, action domain.AuditAction, before, after interface{}) (*domain.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if entity == "" {
		return nil, errors.New("audit entity is required")
	}
	if entityID == "" {
		return nil, errors.New("audit entity id is required")
	}

	switch action {
	case domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete:
	default:
		return nil, fmt.Errorf("unknown audit action %q", action)
	}

	beforeSnap, err := snapshot(before)
	if err != nil {
		return nil, err
	}

	afterSnap, err := snapshot(after)
	if err != nil {
		return nil, err
	}

	entry := &domain.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Before:   beforeSnap,
		After:    afterSnap,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Error("failed to append audit log", "entity", entity, "entity_id", entityID, "action", string(action), err)
		return nil, err
	}

	metrics.AuditRecords.WithLabelValues(entity, string(action)).Inc()

	return entry, nil
}

func (s *auditLogService) FindByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if entity == "" {
		return nil, errors.New("audit entity is required")
	}
	if entityID == "" {
		return nil, errors.New("audit entity id is required")
	}

	return s.auditRepo.FindByEntity(ctx, entity, entityID)
}

// snapshot serializes an entity state for the before/after columns. The
// columns stay schema-less because every entity type shares one audit table.
func snapshot(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit snapshot: %w", err)
	}

	return datatypes.JSON(raw), nil
}
