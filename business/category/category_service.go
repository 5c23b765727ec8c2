package category

import (
	"context"
	"fmt"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindActiveByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAllActive(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAllActive(ctx)
	if err != nil {
		logger.Error("failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.FindActiveByID(ctx, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	category := &domain.Category{
		Name: name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create category", "name", name, err)
		return nil, err
	}

	logger.Info("category created", "id", category.ID, "name", category.Name)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint64, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	existing, err := s.categoryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name

	if err := s.categoryRepo.Save(ctx, &existing); err != nil {
		logger.Error("failed to update category", "id", id, err)
		return nil, err
	}

	return &existing, nil
}

// DeleteCategory soft-deletes the category. Products keep their category_id;
// the relation is a back-reference, not ownership, so nothing cascades.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	existing, err := s.categoryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	existing.IsDeleted = true
	existing.DeletedAt = &now

	if err := s.categoryRepo.Save(ctx, &existing); err != nil {
		logger.Error("failed to delete category", "id", id, err)
		return err
	}

	logger.Info("category deleted", "id", id)

	return nil
}
