package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupServiceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	serviceHandler := handler.GetServiceHandler()

	// Public routes
	e.GET("/v1/services", serviceHandler.ListServices)
	e.GET("/v1/services/search", serviceHandler.SearchServices)
	e.GET("/v1/services/:id", serviceHandler.GetService)

	// Protected routes
	services := e.Group("/v1/services")
	services.Use(authMiddleware.Authenticate)

	services.POST("", serviceHandler.CreateService)
	services.GET("/mine", serviceHandler.ListMyServices)
	services.PUT("/:id", serviceHandler.UpdateService)
	services.DELETE("/:id", serviceHandler.DeleteService)

	// Admin moderation
	admin := e.Group("/v1/admin/services")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.DELETE("/:id", serviceHandler.RemoveService)
}
