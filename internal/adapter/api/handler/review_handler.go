package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

// Rating has no range tag: out of range values are clamped, not rejected.
type createReviewRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Create(c.Request().Context(), middleware.ActorFrom(c), usecase.CreateReviewInput{
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Text:    req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) GetSellerReviews(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListForSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"reviews": reviews,
	})
}
