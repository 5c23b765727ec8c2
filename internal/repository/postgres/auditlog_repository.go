package postgres

import (
	"context"
	"fmt"

	"klontong/domain"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	DB *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{
		DB: db,
	}
}

// Create appends one row. Audit rows are never updated or deleted.
func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) FindByEntity(ctx context.Context, entity, entityID string) ([]domain.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var entries []domain.AuditLog
	err := r.DB.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("timestamp, id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find audit logs: %w", err)
	}

	return entries, nil
}
