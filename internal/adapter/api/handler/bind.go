package handler

import (
	"github.com/labstack/echo/v4"

	"localmarket/pkg/errors"
)

// bindAndValidate decodes the request body into req and runs its validate
// tags. Malformed JSON is a 400 like any other bad input.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return c.Validate(req)
}
