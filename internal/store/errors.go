package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when the email unique constraint fires
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateTrackingID is returned when the tracking id unique
	// constraint fires
	ErrDuplicateTrackingID = errors.New("tracking id already exists")
)

// isUniqueViolation detects a unique-constraint failure from either driver.
// lib/pq reports "duplicate key value violates unique constraint";
// sqlite reports "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
