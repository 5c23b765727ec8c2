package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uint64, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("failed to find all categories", err)
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid category id", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation failed", err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.categoryService.CreateCategory(ctx, req.Name)
	if err != nil {
		logger.Error("failed to create category", err)
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid category id", nil))
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation failed", err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.categoryService.UpdateCategory(ctx, id, req.Name)
	if err != nil {
		logger.Error("failed to update category", "id", id, err)
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid category id", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, id); err != nil {
		logger.Error("failed to delete category", "id", id, err)
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, nil))
}
