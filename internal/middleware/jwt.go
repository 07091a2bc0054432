package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"roompla/internal/auth"
)

// claimsKey is the context key under which verified claims are stored.
const claimsKey = "claims"

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the verified claims into the request context. The provided
// secret must match the one used when issuing tokens. Handlers retrieve
// the claims via CallerClaims.
//
// The "Bearer" prefix is accepted case-insensitively.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(header[7:])

			claims, err := auth.VerifyToken(secret, raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token is expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// CallerClaims returns the verified claims stored by JWTAuth, or nil when
// the request was not authenticated.
func CallerClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
