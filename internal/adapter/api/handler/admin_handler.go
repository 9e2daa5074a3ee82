package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type AdminHandler struct {
	analyticsUseCase *usecase.AnalyticsUseCase
}

func NewAdminHandler(analyticsUseCase *usecase.AnalyticsUseCase) *AdminHandler {
	return &AdminHandler{
		analyticsUseCase: analyticsUseCase,
	}
}

func (h *AdminHandler) GetAnalytics(c echo.Context) error {
	analytics, err := h.analyticsUseCase.Summary(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, analytics)
}
