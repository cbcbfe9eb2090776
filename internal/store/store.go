// Package store persists users, sessions, reset codes, and the
// ownership-scoped resources (contacts, special dates, gift orders).
//
// Every query against an owned resource filters by the owning user id;
// ownership of a special date is transitive through its parent contact.
package store

import (
	"context"
	"time"

	"github.com/badgerworks/honeybadger/internal/model"
)

// UserStore persists account records keyed by case-normalized email
type UserStore interface {
	// Create persists a new user. The email must be unique;
	// a conflict yields ErrDuplicateEmail.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// GetByEmail returns the full record including the password hash,
	// for internal auth use only.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID returns the user regardless of the active flag; callers
	// decide how to treat inactive accounts.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdatePassword overwrites the stored hash for the given email.
	UpdatePassword(ctx context.Context, email, newHash string) error

	// SetActive soft-activates or soft-deactivates an account.
	SetActive(ctx context.Context, id string, active bool) error
}

// SessionStore persists server-side session rows for issued tokens
type SessionStore interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// ResetStore persists single-use password reset codes
type ResetStore interface {
	Create(ctx context.Context, code, email string, expiresAt time.Time) error
	Get(ctx context.Context, code string) (*model.PasswordReset, error)

	// Claim atomically consumes an unexpired code. Under concurrent
	// attempts with the same code, exactly one caller gets true.
	Claim(ctx context.Context, code string) (bool, error)

	DeleteExpired(ctx context.Context) (int64, error)
}

// ContactStore persists address-book entries scoped to their owner
type ContactStore interface {
	Create(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	ListByUser(ctx context.Context, userID string) ([]model.Contact, error)

	// Delete removes the contact and, by cascade, its special dates.
	// A missing or non-owned contact returns false, not an error.
	Delete(ctx context.Context, userID, contactID string) (bool, error)

	// Owned reports whether the contact exists and belongs to userID.
	Owned(ctx context.Context, userID, contactID string) (bool, error)
}

// SpecialDateStore persists dates owned through a parent contact
type SpecialDateStore interface {
	Create(ctx context.Context, date *model.SpecialDate) (*model.SpecialDate, error)
	ListByContact(ctx context.Context, contactID string) ([]model.SpecialDate, error)
	Delete(ctx context.Context, userID, dateID string) (bool, error)
}

// OrderStore persists gift orders scoped to their sender
type OrderStore interface {
	// Create persists a new order. The tracking id must be unique;
	// a conflict yields ErrDuplicateTrackingID.
	Create(ctx context.Context, order *model.GiftOrder) (*model.GiftOrder, error)

	ListByUser(ctx context.Context, userID string) ([]model.GiftOrder, error)
}

// Store groups the per-entity stores behind one injection point so the
// same handlers run against the SQL store or the in-memory double
type Store interface {
	Users() UserStore
	Sessions() SessionStore
	Resets() ResetStore
	Contacts() ContactStore
	SpecialDates() SpecialDateStore
	Orders() OrderStore
	Close() error
}
