package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/labstack/echo/v4"
)

type sendHoneyBadgerRequest struct {
	RecipientName    string `json:"recipientName"`
	RecipientContact string `json:"recipientContact"`
	GiftType         string `json:"giftType"`
	GiftValue        string `json:"giftValue"`
	Challenge        string `json:"challenge"`
	Message          string `json:"message"`
	Duration         int    `json:"duration"`
}

// handleSendHoneyBadger creates a gift order for the authenticated sender.
// The tracking id is always minted server-side.
func (s *Server) handleSendHoneyBadger(c echo.Context) error {
	var req sendHoneyBadgerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if req.RecipientName == "" {
		errs = append(errs, FieldError{Field: "recipientName", Message: "Recipient name is required"})
	}
	if req.RecipientContact == "" {
		errs = append(errs, FieldError{Field: "recipientContact", Message: "Recipient contact is required"})
	}
	if !model.ValidGiftType(req.GiftType) {
		errs = append(errs, FieldError{Field: "giftType", Message: "Gift type must be one of giftcard, cash, photo, message, physical"})
	}
	if req.Challenge == "" {
		errs = append(errs, FieldError{Field: "challenge", Message: "Challenge is required"})
	}
	if len(errs) > 0 {
		return failValidation(c, "Validation failed", errs)
	}

	claims := identity(c)

	var order *model.GiftOrder
	// The tracking id is time-based; retry on the rare collision
	for attempt := 0; attempt < 3; attempt++ {
		trackingID, err := generateTrackingID()
		if err != nil {
			return s.failInternal(c, err)
		}

		order, err = s.store.Orders().Create(c.Request().Context(), &model.GiftOrder{
			UserID:           claims.UserID,
			TrackingID:       trackingID,
			RecipientName:    req.RecipientName,
			RecipientContact: req.RecipientContact,
			GiftType:         req.GiftType,
			GiftValue:        req.GiftValue,
			Challenge:        req.Challenge,
			Message:          req.Message,
			Duration:         req.Duration,
			Status:           model.StatusPending,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicateTrackingID) {
			return s.failInternal(c, err)
		}
		order = nil
	}
	if order == nil {
		return s.failInternal(c, errors.New("could not allocate a unique tracking id"))
	}

	if s.cfg.EnableSMS {
		msg := fmt.Sprintf("%s sent you a Honey Badger gift! Complete the challenge to unlock it: %s",
			claims.Name, req.Challenge)
		if err := s.notifier.Notify(c.Request().Context(), req.RecipientContact, msg); err != nil {
			logger.Warn("Recipient notification failed",
				logger.F("trackingId", order.TrackingID),
				logger.F("error", err))
		}
	}

	logger.Info("Honey badger sent",
		logger.F("sender", claims.Email),
		logger.F("trackingId", order.TrackingID),
		logger.F("giftType", order.GiftType))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Honey Badger sent successfully!",
		"trackingId": order.TrackingID,
		"sender":     claims.Name,
	})
}

// handleListHoneyBadgers returns the sender's gift orders, newest first
func (s *Server) handleListHoneyBadgers(c echo.Context) error {
	orders, err := s.store.Orders().ListByUser(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"honeyBadgers": orders,
	})
}

// generateTrackingID mints a time-based id with a random suffix,
// e.g. HB1714070256123-4821
func generateTrackingID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HB%d-%04d", time.Now().UnixMilli(), n.Int64()), nil
}
