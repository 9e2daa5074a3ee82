package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	adminHandler := handler.GetAdminHandler()
	reportHandler := handler.GetReportHandler()
	verificationHandler := handler.GetVerificationHandler()

	admin := e.Group("/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(middleware.AdminOnly)

	admin.GET("/analytics", adminHandler.GetAnalytics)

	admin.GET("/reports", reportHandler.GetReports)
	admin.PUT("/reports/:id", reportHandler.MarkReviewed)

	admin.GET("/verification-requests", verificationHandler.GetRequests)
	admin.PUT("/verification-requests/:id/approve", verificationHandler.Decide)
}
