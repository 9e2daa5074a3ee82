package middleware

import (
	"github.com/labstack/echo/v4"

	"localmarket/internal/domain/policy"
	"localmarket/pkg/response"
)

// AdminOnly must run after Authenticate. The role it checks was loaded from
// the stored user record.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := policy.Authorize(ActorFrom(c), policy.AdminAccess, nil); err != nil {
			return response.Error(c, err)
		}
		return next(c)
	}
}
