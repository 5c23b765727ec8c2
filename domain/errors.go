package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSKU     = errors.New("sku already exists")

	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
)
