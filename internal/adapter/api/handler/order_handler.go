package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type createOrderRequest struct {
	ListingID      string `json:"listing_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"gte=0"`
	DeliveryMethod string `json:"delivery_method" validate:"omitempty,oneof=collection delivery"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	order, err := h.orderUseCase.Create(c.Request().Context(), middleware.ActorFrom(c), usecase.CreateOrderInput{
		ListingID:      req.ListingID,
		Quantity:       req.Quantity,
		DeliveryMethod: req.DeliveryMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	view, err := h.orderUseCase.Get(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

func (h *OrderHandler) GetBuyerOrders(c echo.Context) error {
	views, err := h.orderUseCase.ListForBuyer(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"orders": views,
	})
}

func (h *OrderHandler) GetSellerOrders(c echo.Context) error {
	views, err := h.orderUseCase.ListForSeller(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"orders": views,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
