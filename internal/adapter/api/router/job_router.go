package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupJobRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	jobHandler := handler.GetJobHandler()

	// Public routes
	e.GET("/v1/jobs", jobHandler.ListJobs)
	e.GET("/v1/jobs/:id", jobHandler.GetJob)

	// Protected routes
	jobs := e.Group("/v1/jobs")
	jobs.Use(authMiddleware.Authenticate)

	jobs.POST("", jobHandler.CreateJob)
	jobs.GET("/mine", jobHandler.ListMyJobs)
	jobs.GET("/applications", jobHandler.ListMyApplications)
	jobs.POST("/:id/close", jobHandler.CloseJob)
	jobs.POST("/:id/apply", jobHandler.Apply)
	jobs.DELETE("/:id/apply", jobHandler.Withdraw)
	jobs.GET("/:id/applicants", jobHandler.ListApplicants)
}
