package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type SellerHandler struct {
	sellerUseCase *usecase.SellerUseCase
}

func NewSellerHandler(sellerUseCase *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{
		sellerUseCase: sellerUseCase,
	}
}

func (h *SellerHandler) GetProfile(c echo.Context) error {
	view, err := h.sellerUseCase.GetProfile(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

// Verification flags are not part of the request, so clients cannot set them.
type updateSellerProfileRequest struct {
	BusinessName *string  `json:"business_name"`
	Description  *string  `json:"description"`
	AddressText  *string  `json:"address_text"`
	LocationLat  *float64 `json:"location_lat" validate:"omitempty,gte=-90,lte=90"`
	LocationLng  *float64 `json:"location_lng" validate:"omitempty,gte=-180,lte=180"`
}

func (h *SellerHandler) UpdateProfile(c echo.Context) error {
	var req updateSellerProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.sellerUseCase.UpdateProfile(c.Request().Context(), middleware.ActorFrom(c), usecase.SellerProfileUpdate{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		AddressText:  req.AddressText,
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
