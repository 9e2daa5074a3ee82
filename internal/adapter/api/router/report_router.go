package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReportRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reportHandler := handler.GetReportHandler()

	e.POST("/reports", reportHandler.CreateReport, authMiddleware.Authenticate)
}
