package product

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"

	"github.com/shopspring/decimal"
)

// Audit rows for products carry this entity name.
const entityName = "Product"

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindActiveByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAndCount(ctx context.Context, search string, offset, limit int) ([]domain.Product, int64, error)
	Save(ctx context.Context, product *domain.Product) error
}

// AuditRecorder appends one immutable trail row per mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entity, entityID string, action domain.AuditAction, before, after interface{}) (*domain.AuditLog, error)
}

// CreateInput carries all fields of a new product. The category is referenced
// by id only; its existence is left to the store's FK constraint.
type CreateInput struct {
	SKU         string
	Name        string
	Description string
	Weight      float64
	Width       float64
	Height      float64
	Length      float64
	Harga       decimal.Decimal
	Image       string
	CategoryID  uint64
}

// UpdateInput applies only the fields that are non-nil.
type UpdateInput struct {
	SKU         *string
	Name        *string
	Description *string
	Weight      *float64
	Width       *float64
	Height      *float64
	Length      *float64
	Harga       *decimal.Decimal
	Image       *string
	CategoryID  *uint64
}

type productService struct {
	productRepo ProductRepository
	audit       AuditRecorder
}

func NewProductService(productRepo ProductRepository, audit AuditRecorder) *productService {
	return &productService{
		productRepo: productRepo,
		audit:       audit,
	}
}

func (s *productService) CreateProduct(ctx context.Context, input CreateInput) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product := &domain.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Weight:      input.Weight,
		Width:       input.Width,
		Height:      input.Height,
		Length:      input.Length,
		Harga:       input.Harga,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create product", "sku", input.SKU, err)
		return nil, err
	}

	// The audit write is awaited inline: if it fails the create is reported
	// as failed even though the row exists (documented gap, no transaction).
	if _, err := s.audit.Record(ctx, entityName, formatID(product.ID), domain.ActionCreate, nil, product); err != nil {
		return nil, err
	}

	logger.Info("product created", "id", product.ID, "sku", product.SKU)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// GetAllProducts pages through non-deleted products. Page and limit are
// 1-based; out-of-range values fall back to 1 and 10.
func (s *productService) GetAllProducts(ctx context.Context, page, limit int, search string) (domain.PaginatedProducts, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaginatedProducts{}, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	items, total, err := s.productRepo.FindAndCount(ctx, search, offset, limit)
	if err != nil {
		logger.Error("failed to find products", err)
		return domain.PaginatedProducts{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return domain.PaginatedProducts{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint64, input UpdateInput) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	existing, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := existing

	if input.SKU != nil {
		existing.SKU = *input.SKU
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Weight != nil {
		existing.Weight = *input.Weight
	}
	if input.Width != nil {
		existing.Width = *input.Width
	}
	if input.Height != nil {
		existing.Height = *input.Height
	}
	if input.Length != nil {
		existing.Length = *input.Length
	}
	if input.Harga != nil {
		existing.Harga = *input.Harga
	}
	if input.Image != nil {
		existing.Image = *input.Image
	}
	if input.CategoryID != nil {
		existing.CategoryID = *input.CategoryID
	}

	// Drop the preloaded association so Save only touches the product row.
	existing.Category = nil

	if err := s.productRepo.Save(ctx, &existing); err != nil {
		logger.Error("failed to update product", "id", id, err)
		return nil, err
	}

	if _, err := s.audit.Record(ctx, entityName, formatID(id), domain.ActionUpdate, before, existing); err != nil {
		return nil, err
	}

	logger.Info("product updated", "id", id)

	return &existing, nil
}

// DeleteProduct flips the soft-delete pair; the row stays in storage.
// The DELETE audit entry carries the prior state and a null after.
func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	existing, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	before := existing

	now := time.Now()
	existing.IsDeleted = true
	existing.DeletedAt = &now
	existing.Category = nil

	if err := s.productRepo.Save(ctx, &existing); err != nil {
		logger.Error("failed to delete product", "id", id, err)
		return err
	}

	if _, err := s.audit.Record(ctx, entityName, formatID(id), domain.ActionDelete, before, nil); err != nil {
		return err
	}

	logger.Info("product deleted", "id", id)

	return nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
