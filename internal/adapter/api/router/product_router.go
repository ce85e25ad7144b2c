package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	productHandler := handler.GetProductHandler()

	// Public routes
	e.GET("/v1/products", productHandler.ListProducts)
	e.GET("/v1/products/search", productHandler.SearchProducts)
	e.GET("/v1/products/:id", productHandler.GetProduct)

	// Protected routes
	products := e.Group("/v1/products")
	products.Use(authMiddleware.Authenticate)

	products.POST("", productHandler.CreateProduct)
	products.GET("/mine", productHandler.ListMyProducts)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	// Admin moderation
	admin := e.Group("/v1/admin/products")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.DELETE("/:id", productHandler.RemoveProduct)
}
