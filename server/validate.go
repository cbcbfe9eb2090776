package server

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/badgerworks/honeybadger/internal/auth"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\-\s().]{5,19}$`)

// normalizeEmail case-normalizes an email address for storage and lookup
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// passwordErrors maps policy violations onto field errors
func passwordErrors(field, password string) []FieldError {
	var errs []FieldError
	for _, p := range auth.ValidatePassword(password) {
		errs = append(errs, FieldError{Field: field, Message: p})
	}
	return errs
}
