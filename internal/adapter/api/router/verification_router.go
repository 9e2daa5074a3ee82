package router

import (
	"localmarket/internal/adapter/api/handler"
	"localmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupVerificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	verificationHandler := handler.GetVerificationHandler()

	e.POST("/verification-requests", verificationHandler.CreateRequest, authMiddleware.Authenticate)
}
