package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// ErrInvalidToken is returned by verifiers for tokens they cannot accept.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier resolves a bearer token to the local user it identifies.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// Authenticate identifies the viewer from the Authorization header.
// Requests without the header continue anonymously; a present but unusable token is rejected.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			user, err := verifier.VerifyToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated viewer, or nil for anonymous requests.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
