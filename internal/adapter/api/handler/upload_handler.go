package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/adapter/api/middleware"
	"localmarket/internal/usecase"
	"localmarket/pkg/errors"
	"localmarket/pkg/response"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("file is required", err))
	}
	if fileHeader.Size > usecase.MaxUploadBytes {
		return response.Error(c, errors.BadRequest("Image must be 5 MB or smaller", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read uploaded file", err))
	}
	defer file.Close()

	url, err := h.uploadUseCase.UploadImage(c.Request().Context(), middleware.ActorFrom(c), usecase.UploadInput{
		File:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Folder:      c.FormValue("folder"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
