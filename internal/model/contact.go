package model

import "time"

// Contact is an address-book entry owned by exactly one user
type Contact struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	Birthday     string    `json:"birthday,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SpecialDate belongs to a contact; ownership is transitive through it.
// Deleting the contact deletes its special dates.
type SpecialDate struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contactId"`
	DateName  string    `json:"dateName"`
	DateValue string    `json:"dateValue"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
