// Package server exposes the Honey Badger HTTP JSON API: signup/login,
// bearer-token guarded profile and logout, password reset, the contacts
// address book with special dates, gift orders, and the chat helper.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/badgerworks/honeybadger/internal/chat"
	"github.com/badgerworks/honeybadger/internal/config"
	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/badgerworks/honeybadger/internal/notify"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the API server
type Server struct {
	cfg      *config.Config
	store    store.Store
	chat     chat.Responder
	fallback chat.Fallback
	notifier notify.Notifier
	echo     *echo.Echo
}

// New creates a new server on top of an injected store
func New(cfg *config.Config, st store.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		notifier: notify.LogNotifier{},
	}

	if cfg.ChatAPIKey != "" {
		s.chat = chat.NewClient(cfg.ChatAPIKey)
	}

	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.errorHandler

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.GET("", s.handleAPIIndex)

	// Public endpoints
	api.POST("/signup", s.handleSignup)
	api.POST("/login", s.handleLogin)
	api.POST("/auth/forgot-password", s.handleForgotPassword)
	api.POST("/auth/reset-password", s.handleResetPassword)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/auth/me", s.handleMe)
	protected.POST("/auth/logout", s.handleLogout)
	protected.POST("/chat", s.handleChat)
	protected.POST("/contacts", s.handleCreateContact)
	protected.GET("/contacts", s.handleListContacts)
	protected.DELETE("/contacts/:id", s.handleDeleteContact)
	protected.POST("/contacts/:id/special-dates", s.handleCreateSpecialDate)
	protected.GET("/contacts/:id/special-dates", s.handleListSpecialDates)
	protected.DELETE("/special-dates/:id", s.handleDeleteSpecialDate)
	protected.POST("/send-honey-badger", s.handleSendHoneyBadger)
	protected.GET("/honey-badgers", s.handleListHoneyBadgers)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Close closes the underlying store
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) handleHealth(c echo.Context) error {
	sms := "disabled"
	if s.cfg.EnableSMS {
		sms = "enabled"
	}
	chatStatus := "not configured"
	if s.chat != nil {
		chatStatus = "configured"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"features": map[string]string{
			"authentication": "enabled",
			"encryption":     "bcrypt",
			"tokenAuth":      "JWT",
			"sms":            sms,
			"chat":           chatStatus,
		},
	})
}

func (s *Server) handleAPIIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Honey Badger Gifts API",
		"version": "1.0.0",
		"endpoints": map[string]interface{}{
			"auth": map[string]string{
				"signup":         "POST /api/signup",
				"login":          "POST /api/login",
				"profile":        "GET /api/auth/me",
				"logout":         "POST /api/auth/logout",
				"forgotPassword": "POST /api/auth/forgot-password",
				"resetPassword":  "POST /api/auth/reset-password",
			},
			"chat": map[string]string{
				"sendMessage": "POST /api/chat",
			},
			"contacts": map[string]string{
				"create":            "POST /api/contacts",
				"list":              "GET /api/contacts",
				"delete":            "DELETE /api/contacts/:id",
				"createSpecialDate": "POST /api/contacts/:id/special-dates",
				"listSpecialDates":  "GET /api/contacts/:id/special-dates",
				"deleteSpecialDate": "DELETE /api/special-dates/:id",
			},
			"honeyBadgers": map[string]string{
				"send": "POST /api/send-honey-badger",
				"list": "GET /api/honey-badgers",
			},
			"health": "GET /health",
		},
	})
}
