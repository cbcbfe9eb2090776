package server

import (
	"net/http"

	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/labstack/echo/v4"
)

// FieldError names a violated validation rule for one input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fail sends the standard failure envelope
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// failValidation sends a 400 listing every violated rule at once
func failValidation(c echo.Context, message string, errs []FieldError) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// failInternal logs the underlying error server-side and sends a generic
// message; storage error text never reaches the client in production
func (s *Server) failInternal(c echo.Context, err error) error {
	logger.Error("Internal error",
		logger.F("uri", c.Request().RequestURI),
		logger.F("error", err))

	msg := "Internal server error"
	if !s.cfg.IsProduction() {
		msg = err.Error()
	}
	return fail(c, http.StatusInternalServerError, msg)
}

// errorHandler renders unhandled errors (including unknown routes) as the
// standard JSON envelope
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if status == http.StatusNotFound {
		message = "Route not found"
	}
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled error", logger.F("error", err))
		if !s.cfg.IsProduction() {
			message = err.Error()
		}
	}

	_ = c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
