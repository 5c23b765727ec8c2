package postgres

import (
	"context"
	"errors"
	"fmt"

	"klontong/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) FindActiveByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category

	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindAllActive(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	return nil
}
