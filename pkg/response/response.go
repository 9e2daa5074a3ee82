package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "localmarket/pkg/errors"
	"localmarket/pkg/logger"
)

// ErrorBody is the only error shape clients ever see.
type ErrorBody struct {
	Error string `json:"error"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorBody{Error: validationMessage(validationErr)})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, appErr)
		}
		return c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			msg = s
		}
		return c.JSON(httpErr.Code, ErrorBody{Error: msg})
	}

	logger.Error("%s %s: unexpected error: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: "An unexpected error occurred"})
}

// HTTPErrorHandler routes errors returned by middleware and the router
// through the same envelope as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := Error(c, err); writeErr != nil {
		logger.Error("failed to write error response: %v", writeErr)
	}
}

func validationMessage(validationErr validator.ValidationErrors) string {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		param := err.Param()

		switch err.Tag() {
		case "required":
			return field + " is required"
		case "min", "gte":
			return field + " must be at least " + param
		case "max", "lte":
			return field + " must be at most " + param
		case "gt":
			return field + " must be greater than " + param
		case "oneof":
			return field + " must be one of: " + param
		case "email":
			return field + " must be a valid email address"
		case "url":
			return field + " must be a valid URL"
		default:
			return field + " is invalid"
		}
	}
	return "Invalid input data"
}
