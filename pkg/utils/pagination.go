package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"localmarket/pkg/errors"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// PaginationParams represents limit/offset pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// GetPaginationParams extracts limit and offset from the query string.
// Values that are present but not integers are rejected.
func GetPaginationParams(c echo.Context) (PaginationParams, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return PaginationParams{}, err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return PaginationParams{}, err
	}

	if offset < 0 {
		offset = 0
	}

	return PaginationParams{
		Limit:  ClampLimit(limit),
		Offset: offset,
	}, nil
}

// ClampLimit maps a non-positive limit to DefaultLimit and caps it at MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest(name+" must be an integer", err)
	}
	return v, nil
}
