// Package notify defines the out-of-band delivery contract the core
// depends on. Actual SMS/webhook mechanics live behind the interface.
package notify

import (
	"context"

	"github.com/badgerworks/honeybadger/internal/logger"
)

// Notifier delivers a message to a recipient contact (phone or email)
type Notifier interface {
	Notify(ctx context.Context, recipientContact, message string) error
}

// LogNotifier writes deliveries to the log instead of sending them.
// Used in development and whenever SMS is disabled.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, recipientContact, message string) error {
	logger.Info("Notification (not delivered, SMS disabled)",
		logger.F("recipient", recipientContact),
		logger.F("message", message))
	return nil
}
