package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"localmarket/internal/infrastructure/ratelimit"
	"localmarket/pkg/errors"
	"localmarket/pkg/logger"
	"localmarket/pkg/response"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ok, wait := limiter.Allow(ip); !ok {
				logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}
			return next(c)
		}
	}
}
