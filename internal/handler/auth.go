package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"roompla/internal/auth"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	Authenticator *auth.Authenticator
}

// NewAuthHandler constructs an AuthHandler. The authenticator must be non-nil.
func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	if a == nil {
		panic("nil authenticator passed to NewAuthHandler")
	}
	return &AuthHandler{Authenticator: a}
}

type loginReq struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Login handles POST /login. On success the signed token is returned as
// plain text; the client presents it in the Authorization header on every
// subsequent request. Every credential failure maps to the same 401
// without detail so callers cannot probe which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/password required"})
	}

	// The directory bind can be slow; bound the whole resolution.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	token, err := h.Authenticator.Login(ctx, req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		c.Logger().Errorf("login: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.String(http.StatusOK, token)
}
