package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"localmarket/internal/domain/policy"
	"localmarket/pkg/errors"
	"localmarket/pkg/logger"
	"localmarket/pkg/response"
)

const (
	ContextUID   = "uid"
	ContextActor = "actor"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// ActorLoader resolves a verified uid to the caller's stored role.
type ActorLoader interface {
	Actor(ctx context.Context, uid string) (policy.Actor, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	actors   ActorLoader
}

func NewAuthMiddleware(verifier TokenVerifier, actors ActorLoader) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		actors:   actors,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		if err := m.identify(c, token); err != nil {
			return response.Error(c, err)
		}

		return next(c)
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, err := bearerToken(c); err == nil {
			if err := m.identify(c, token); err != nil {
				logger.Debug("Ignoring invalid token on public route: %v", err)
			}
		}
		return next(c)
	}
}

func (m *AuthMiddleware) identify(c echo.Context, token string) error {
	ctx := c.Request().Context()

	uid, err := m.verifier.VerifyToken(ctx, token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	actor, err := m.actors.Actor(ctx, uid)
	if err != nil {
		return err
	}

	c.Set(ContextUID, uid)
	c.Set(ContextActor, actor)
	return nil
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

// ActorFrom returns the caller set by Authenticate or OptionalAuth; the
// zero Actor means anonymous.
func ActorFrom(c echo.Context) policy.Actor {
	actor, _ := c.Get(ContextActor).(policy.Actor)
	return actor
}
