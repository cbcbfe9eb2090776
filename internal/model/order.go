package model

import "time"

// Gift types accepted for an order
const (
	GiftTypeGiftcard = "giftcard"
	GiftTypeCash     = "cash"
	GiftTypePhoto    = "photo"
	GiftTypeMessage  = "message"
	GiftTypePhysical = "physical"
)

// Order statuses. Transitions are monotonic: pending -> active -> completed.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// GiftOrder is a sender-created gift + challenge bundle ("honey badger")
type GiftOrder struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	TrackingID       string    `json:"trackingId"`
	RecipientName    string    `json:"recipientName"`
	RecipientContact string    `json:"recipientContact"`
	GiftType         string    `json:"giftType"`
	GiftValue        string    `json:"giftValue,omitempty"`
	Challenge        string    `json:"challenge"`
	Message          string    `json:"message,omitempty"`
	Duration         int       `json:"duration,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ValidGiftType reports whether t is one of the accepted gift types
func ValidGiftType(t string) bool {
	switch t {
	case GiftTypeGiftcard, GiftTypeCash, GiftTypePhoto, GiftTypeMessage, GiftTypePhysical:
		return true
	}
	return false
}
