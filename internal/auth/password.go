package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is two above the library default
const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
// It never returns an error on a simple mismatch.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword checks the shared password policy and returns every
// violated rule, not just the first
func ValidatePassword(password string) []string {
	var problems []string

	if len(password) < 6 {
		problems = append(problems, "Password must be at least 6 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		problems = append(problems, "Password must contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "Password must contain a lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "Password must contain a number")
	}

	return problems
}
