package router

import (
	"klontong/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
	products.PATCH("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory)
	categories.PUT("/:id", handler.UpdateCategory)
	categories.DELETE("/:id", handler.DeleteCategory)
}

func SetCheckoutRoutes(api *echo.Group, handler *rest.CheckoutHandler) {
	api.POST("/checkout", handler.Process)
}

func SetAuditLogRoutes(api *echo.Group, handler *rest.AuditLogHandler) {
	api.GET("/audit-logs", handler.GetByEntity)
}
