package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/badgerworks/honeybadger/internal/auth"
	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/labstack/echo/v4"
)

// resetCodeTTL is how long a password reset code stays valid
const resetCodeTTL = 15 * time.Minute

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// handleForgotPassword issues a reset code. The response is identical
// whether or not the email exists, to prevent enumeration.
func (s *Server) handleForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if !validEmail(req.Email) {
		return failValidation(c, "Please provide a valid email address",
			[]FieldError{{Field: "email", Message: "Valid email is required"}})
	}

	email := normalizeEmail(req.Email)
	genericMessage := "If an account exists with that email, a reset token has been generated."

	_, err := s.store.Users().GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"success": true,
				"message": genericMessage,
			})
		}
		return s.failInternal(c, err)
	}

	code, err := generateResetCode()
	if err != nil {
		return s.failInternal(c, err)
	}

	expiresAt := time.Now().Add(resetCodeTTL)
	if err := s.store.Resets().Create(c.Request().Context(), code, email, expiresAt); err != nil {
		return s.failInternal(c, err)
	}

	// Out-of-band channel: logged server-side; a mail/SMS sender would
	// pick this up in a full deployment
	logger.Info("Password reset token generated",
		logger.F("email", email),
		logger.F("expires", expiresAt.Format(time.RFC3339)))

	resp := map[string]interface{}{
		"success": true,
		"message": genericMessage,
	}
	if !s.cfg.IsProduction() {
		resp["token"] = code
	}

	return c.JSON(http.StatusOK, resp)
}

// handleResetPassword consumes a reset code and sets a new password.
// The policy is validated before the code is consumed, so a weak-password
// attempt does not burn the code; consumption itself is an atomic claim.
func (s *Server) handleResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if req.Token == "" {
		errs = append(errs, FieldError{Field: "token", Message: "Reset token is required"})
	}
	errs = append(errs, passwordErrors("newPassword", req.NewPassword)...)
	if len(errs) > 0 {
		return failValidation(c, "Validation failed", errs)
	}

	ctx := c.Request().Context()

	reset, err := s.store.Resets().Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "Invalid or expired reset token")
		}
		return s.failInternal(c, err)
	}

	if reset.IsExpired() {
		// Expired codes are inert; purge them on sight
		if _, err := s.store.Resets().DeleteExpired(ctx); err != nil {
			return s.failInternal(c, err)
		}
		return fail(c, http.StatusBadRequest, "Reset token has expired. Please request a new one.")
	}

	claimed, err := s.store.Resets().Claim(ctx, req.Token)
	if err != nil {
		return s.failInternal(c, err)
	}
	if !claimed {
		// Lost a race with a concurrent consumption
		return fail(c, http.StatusBadRequest, "Invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return s.failInternal(c, err)
	}

	if err := s.store.Users().UpdatePassword(ctx, reset.Email, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return s.failInternal(c, err)
	}

	logger.Info("Password reset successful", logger.F("email", reset.Email))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}

// generateResetCode returns a uniform random 6-digit code
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
