package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type VerificationHandler struct {
	verificationUseCase *usecase.VerificationUseCase
}

func NewVerificationHandler(verificationUseCase *usecase.VerificationUseCase) *VerificationHandler {
	return &VerificationHandler{
		verificationUseCase: verificationUseCase,
	}
}

type createVerificationRequest struct {
	ListingID    string   `json:"listing_id"`
	Type         string   `json:"type" validate:"omitempty,oneof=item-verification phone-verification bank-verification id-verification"`
	EvidenceURLs []string `json:"evidence_urls" validate:"dive,required"`
}

type decideVerificationRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Comment  string `json:"comment"`
}

func (h *VerificationHandler) CreateRequest(c echo.Context) error {
	var req createVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.verificationUseCase.Create(c.Request().Context(), middleware.ActorFrom(c), usecase.CreateVerificationInput{
		ListingID:    req.ListingID,
		Type:         req.Type,
		EvidenceURLs: req.EvidenceURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

func (h *VerificationHandler) GetRequests(c echo.Context) error {
	requests, err := h.verificationUseCase.List(c.Request().Context(), middleware.ActorFrom(c), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"requests": requests,
	})
}

func (h *VerificationHandler) Decide(c echo.Context) error {
	var req decideVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.verificationUseCase.Decide(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), usecase.DecideVerificationInput{
		Approved: *req.Approved,
		Comment:  req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}
