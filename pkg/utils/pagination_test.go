package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localmarket/pkg/errors"
)

func contextWithQuery(query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/listings?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", DefaultLimit, 0},
		{"limit=0&offset=-4", DefaultLimit, 0},
		{"limit=20&offset=40", 20, 40},
		{"limit=9223372036854775807&offset=1", MaxLimit, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p, err := GetPaginationParams(contextWithQuery(tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestGetPaginationParamsRejectsNonIntegers(t *testing.T) {
	_, err := GetPaginationParams(contextWithQuery("limit=ten"))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "limit must be an integer", appErr.Message)

	_, err = GetPaginationParams(contextWithQuery("offset=1.5"))
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
