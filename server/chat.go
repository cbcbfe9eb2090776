package server

import (
	"net/http"

	"github.com/badgerworks/honeybadger/internal/chat"
	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/labstack/echo/v4"
)

type chatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

// handleChat answers an assistant question. The upstream backend is
// optional; without it the deterministic fallback answers with a 503 so
// clients can tell the difference, and an upstream failure degrades to
// the fallback with a 200.
func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Message == "" {
		return failValidation(c, "Validation failed",
			[]FieldError{{Field: "message", Message: "Message is required"}})
	}

	ctx := c.Request().Context()

	if s.chat == nil {
		fallback, _ := s.fallback.Respond(ctx, req.Message, req.ConversationHistory)
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"success":          false,
			"message":          "AI chatbot is not configured",
			"fallbackResponse": fallback,
		})
	}

	reply, err := s.chat.Respond(ctx, req.Message, req.ConversationHistory)
	if err != nil {
		logger.Warn("Chat backend failed, using fallback", logger.F("error", err))
		fallback, _ := s.fallback.Respond(ctx, req.Message, req.ConversationHistory)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  fallback,
			"fallback": true,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": reply,
	})
}
