package postgres

import (
	"context"
	"errors"
	"fmt"

	"klontong/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindActiveByID loads a non-deleted product with its category populated.
func (r *ProductRepository) FindActiveByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindAndCount returns one page of non-deleted products plus the total count
// before pagination. Search matches name case-insensitively.
func (r *ProductRepository) FindAndCount(ctx context.Context, search string, offset, limit int) ([]domain.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("is_deleted = ?", false)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []domain.Product
	err := query.
		Preload("Category").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}

	return products, total, nil
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}

	return nil
}
