package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"localmarket/pkg/errors"
	"localmarket/pkg/response"
)

// TokenIssuer is implemented by the development identity provider.
type TokenIssuer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type DevAuthHandler struct {
	issuer TokenIssuer
}

var devAuthHandler *DevAuthHandler

func NewDevAuthHandler(issuer TokenIssuer) *DevAuthHandler {
	return &DevAuthHandler{
		issuer: issuer,
	}
}

func SetupDevAuthHandler(issuer TokenIssuer) {
	devAuthHandler = NewDevAuthHandler(issuer)
}

func GetDevAuthHandler() *DevAuthHandler {
	return devAuthHandler
}

type devLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges dev credentials for a bearer token. It stands in for the
// client-side sign-in a managed identity provider would handle.
func (h *DevAuthHandler) Login(c echo.Context) error {
	var req devLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.issuer.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid credentials", err))
	}

	return response.Success(c, map[string]string{
		"token": token,
	})
}
