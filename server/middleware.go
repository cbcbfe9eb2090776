package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/badgerworks/honeybadger/internal/auth"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware
const (
	ctxClaims = "claims"
	ctxToken  = "token"
)

// authMiddleware authenticates the bearer token before any handler logic
// runs. A missing token is 401; an invalid, expired, or revoked token is
// 403. The verified identity is attached to the request context and is
// the only source of ownership scoping downstream.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return fail(c, http.StatusUnauthorized, "Access token required")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return fail(c, http.StatusUnauthorized, "Access token required")
		}

		claims, err := auth.VerifyToken(token, []byte(s.cfg.JWTSecret))
		if err != nil {
			return fail(c, http.StatusForbidden, "Invalid or expired token")
		}

		// Persisted-session check: the signature alone is not enough,
		// a matching unexpired session row must still exist.
		session, err := s.store.Sessions().Get(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, http.StatusForbidden, "Invalid or expired token")
			}
			return s.failInternal(c, err)
		}
		if session.IsExpired() {
			return fail(c, http.StatusForbidden, "Invalid or expired token")
		}

		user, err := s.store.Users().GetByID(c.Request().Context(), session.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, http.StatusForbidden, "Invalid or expired token")
			}
			return s.failInternal(c, err)
		}
		if !user.IsActive {
			return fail(c, http.StatusForbidden, "Account has been disabled")
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxToken, token)
		return next(c)
	}
}

// identity returns the claims attached by authMiddleware
func identity(c echo.Context) *auth.Claims {
	return c.Get(ctxClaims).(*auth.Claims)
}
