package router

import (
	"localmarket/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, signupLimit echo.MiddlewareFunc) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup, signupLimit)
}
