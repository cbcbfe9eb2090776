package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/badgerworks/honeybadger/internal/auth"
	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/labstack/echo/v4"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignup creates an account and logs the new user straight in
func (s *Server) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if len(req.Name) < 2 {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if !validEmail(req.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}
	errs = append(errs, passwordErrors("password", req.Password)...)
	if req.Phone != "" && !validPhone(req.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "Valid phone number required"})
	}
	if len(errs) > 0 {
		return failValidation(c, "Validation failed", errs)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return s.failInternal(c, err)
	}

	user, err := s.store.Users().Create(c.Request().Context(), &model.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Phone:        req.Phone,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return fail(c, http.StatusBadRequest, "User already exists with this email")
		}
		return s.failInternal(c, err)
	}

	token, err := s.issueSession(c.Request().Context(), user)
	if err != nil {
		return s.failInternal(c, err)
	}

	logger.Info("New user registered", logger.F("email", user.Email))

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// handleLogin verifies credentials and issues a fresh token
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if !validEmail(req.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		return failValidation(c, "Please provide valid email and password", errs)
	}

	user, err := s.store.Users().GetByEmail(c.Request().Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return s.failInternal(c, err)
	}

	if !user.IsActive {
		return fail(c, http.StatusUnauthorized, "Account has been disabled")
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := s.issueSession(c.Request().Context(), user)
	if err != nil {
		return s.failInternal(c, err)
	}

	logger.Info("User logged in", logger.F("email", user.Email))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// handleMe returns the authenticated user's profile
func (s *Server) handleMe(c echo.Context) error {
	claims := identity(c)

	user, err := s.store.Users().GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// handleLogout revokes the presented token's session row
func (s *Server) handleLogout(c echo.Context) error {
	claims := identity(c)
	token := c.Get(ctxToken).(string)

	if _, err := s.store.Sessions().Delete(c.Request().Context(), token); err != nil {
		return s.failInternal(c, err)
	}

	logger.Info("User logged out", logger.F("email", claims.Email))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// issueSession signs a bearer token and records the matching session row
func (s *Server) issueSession(ctx context.Context, user *model.User) (string, error) {
	token, err := auth.IssueToken(user.ID, user.Email, user.Name, []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(auth.TokenTTL)
	if err := s.store.Sessions().Create(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}
