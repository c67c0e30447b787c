package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"oalass-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const actorKey = "oalass.actor"

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller on the echo context.
func JWTAuth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			usr, err := a.Authenticate(c.Request().Context(), token)
			switch {
			case errors.Is(err, user.ErrInactive):
				return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
			case err != nil:
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			SetActor(c, usr)
			return next(c)
		}
	}
}

// RequireRoles lets the request through only when the caller holds one of roles.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			usr := Actor(c)
			if usr == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			if _, ok := allowed[usr.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": user.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}

func SetActor(c echo.Context, u *user.User) { c.Set(actorKey, u) }

// Actor returns the authenticated caller, or nil on public routes.
func Actor(c echo.Context) *user.User {
	u, _ := c.Get(actorKey).(*user.User)
	return u
}

func bearer(h string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
