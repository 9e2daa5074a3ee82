package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type createReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=listing user review order"`
	TargetID   string `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req createReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.Create(c.Request().Context(), middleware.ActorFrom(c), usecase.CreateReportInput{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, report)
}

func (h *ReportHandler) GetReports(c echo.Context) error {
	reports, err := h.reportUseCase.List(c.Request().Context(), middleware.ActorFrom(c), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"reports": reports,
	})
}

func (h *ReportHandler) MarkReviewed(c echo.Context) error {
	report, err := h.reportUseCase.MarkReviewed(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, report)
}
