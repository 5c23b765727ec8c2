package rest

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"klontong/business/product"
	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, page, limit int, search string) (domain.PaginatedProducts, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, input product.CreateInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint64, input product.UpdateInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type UploadService interface {
	UploadProductImage(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	DeleteProductImage(ctx context.Context, imageURL string)
	ReplaceProductImage(ctx context.Context, oldImageURL string, data []byte, originalName, contentType string) (string, error)
}

type ProductHandler struct {
	productService ProductService
	uploadService  UploadService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService, uploadService UploadService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadService:  uploadService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	SKU         string  `json:"sku" form:"sku" validate:"required"`
	Name        string  `json:"name" form:"name" validate:"required"`
	Description string  `json:"description" form:"description" validate:"required"`
	Weight      float64 `json:"weight" form:"weight" validate:"required,gt=0"`
	Width       float64 `json:"width" form:"width" validate:"required,gt=0"`
	Height      float64 `json:"height" form:"height" validate:"required,gt=0"`
	Length      float64 `json:"length" form:"length" validate:"required,gt=0"`
	Harga       string  `json:"harga" form:"harga" validate:"required"`
	CategoryID  uint64  `json:"categoryId" form:"categoryId" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	SKU         *string  `json:"sku" form:"sku"`
	Name        *string  `json:"name" form:"name"`
	Description *string  `json:"description" form:"description"`
	Weight      *float64 `json:"weight" form:"weight" validate:"omitempty,gt=0"`
	Width       *float64 `json:"width" form:"width" validate:"omitempty,gt=0"`
	Height      *float64 `json:"height" form:"height" validate:"omitempty,gt=0"`
	Length      *float64 `json:"length" form:"length" validate:"omitempty,gt=0"`
	Harga       *string  `json:"harga" form:"harga"`
	CategoryID  *uint64  `json:"categoryId" form:"categoryId" validate:"omitempty,gt=0"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	page, limit := 1, 10

	if pageStr := c.QueryParam("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "page must be a positive integer", nil))
		}
		page = p
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "limit must be a positive integer", nil))
		}
		limit = l
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.productService.GetAllProducts(ctx, page, limit, c.QueryParam("search"))
	if err != nil {
		logger.Error("failed to find all products", err)
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid product id", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, found))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation failed", err.Error()))
	}

	harga, err := decimal.NewFromString(req.Harga)
	if err != nil || harga.LessThanOrEqual(decimal.Zero) {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "harga must be a positive decimal", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		data, contentType, err := readFormFile(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
		}

		imageURL, err = h.uploadService.UploadProductImage(ctx, data, file.Filename, contentType)
		if err != nil {
			if errors.Is(err, domain.ErrFileTooLarge) || errors.Is(err, domain.ErrFileTypeNotAllowed) {
				return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
			}
			return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
		}
	}

	created, err := h.productService.CreateProduct(ctx, product.CreateInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Width:       req.Width,
		Height:      req.Height,
		Length:      req.Length,
		Harga:       harga,
		Image:       imageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		logger.Error("failed to create product", err)
		if errors.Is(err, domain.ErrDuplicateSKU) {
			return c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid product id", nil))
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation failed", err.Error()))
	}

	input := product.UpdateInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Width:       req.Width,
		Height:      req.Height,
		Length:      req.Length,
		CategoryID:  req.CategoryID,
	}

	if req.Harga != nil {
		harga, err := decimal.NewFromString(*req.Harga)
		if err != nil || harga.LessThanOrEqual(decimal.Zero) {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "harga must be a positive decimal", nil))
		}
		input.Harga = &harga
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if file, err := c.FormFile("image"); err == nil {
		existing, err := h.productService.GetProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
			}
			return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
		}

		data, contentType, err := readFormFile(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
		}

		imageURL, err := h.uploadService.ReplaceProductImage(ctx, existing.Image, data, file.Filename, contentType)
		if err != nil {
			if errors.Is(err, domain.ErrFileTooLarge) || errors.Is(err, domain.ErrFileTypeNotAllowed) {
				return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error(), nil))
			}
			return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
		}

		input.Image = &imageURL
	}

	updated, err := h.productService.UpdateProduct(ctx, id, input)
	if err != nil {
		logger.Error("failed to update product", "id", id, err)
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		if errors.Is(err, domain.ErrDuplicateSKU) {
			return c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid product id", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	existing, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		logger.Error("failed to delete product", "id", id, err)
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error(), nil))
	}

	// Orphaned image cleanup is best-effort and never fails the delete.
	h.uploadService.DeleteProductImage(ctx, existing.Image)

	return c.JSON(http.StatusOK, response.Success(http.StatusOK, nil))
}

func readFormFile(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}

	return data, file.Header.Get("Content-Type"), nil
}
