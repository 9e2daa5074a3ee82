package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/pkg/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return response.Success(c, map[string]string{
		"status": "ok",
	})
}
