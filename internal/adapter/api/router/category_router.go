package router

import (
	"localmarket/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupCategoryRouter(e *echo.Echo) {
	categoryHandler := handler.GetCategoryHandler()
	e.GET("/categories", categoryHandler.GetCategories)
}
