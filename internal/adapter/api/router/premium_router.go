package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPremiumRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	premiumHandler := handler.GetPremiumHandler()

	// Protected routes
	premium := e.Group("/v1/premium")
	premium.Use(authMiddleware.Authenticate)

	premium.POST("/requests", premiumHandler.SubmitRequest)
	premium.GET("/requests/mine", premiumHandler.ListMyRequests)

	// Admin routes
	admin := e.Group("/v1/admin/premium")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/requests", premiumHandler.ListRequests)
	admin.POST("/requests/:id/resolve", premiumHandler.ResolveRequest)
}
