package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/domain/entity"
	"localmarket/pkg/response"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"categories": entity.Categories(),
	})
}
