package router

import (
	"localmarket/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupDevRouter exposes the dev login only when the dev identity provider
// is wired in and the service runs in development.
func SetupDevRouter(e *echo.Echo, environment string) {
	devAuthHandler := handler.GetDevAuthHandler()
	if environment != "development" || devAuthHandler == nil {
		return
	}

	e.POST("/_dev/login", devAuthHandler.Login)
}
