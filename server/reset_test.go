package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgotPassword_AntiEnumeration(t *testing.T) {
	s, _ := newTestServer(t)
	signup(t, s, "Ann Lee", "ann@example.com")

	rec, known := do(t, s, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "ann@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, known["success"])

	rec, unknown := do(t, s, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "ghost@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, unknown["success"])

	// Same status and message whether or not the account exists
	assert.Equal(t, known["message"], unknown["message"])

	// Outside production the code is echoed for the real account only
	assert.NotEmpty(t, known["token"])
	assert.NotContains(t, unknown, "token")
}

func TestForgotPassword_InvalidEmail(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["errors"])
}

func TestResetPassword_FullFlow(t *testing.T) {
	s, _ := newTestServer(t)
	signup(t, s, "Ann Lee", "ann@example.com")

	_, resp := do(t, s, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "ann@example.com",
	})
	code := resp["token"].(string)
	require.Len(t, code, 6)

	// A weak password is rejected before the code is consumed
	rec, resp := do(t, s, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       code,
		"newPassword": "weak",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, resp["errors"])

	// The same code still works with a strong password
	rec, resp = do(t, s, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       code,
		"newPassword": "NewPassw0rd",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	// Single use: replaying the code fails
	rec, resp = do(t, s, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       code,
		"newPassword": "AnotherPassw0rd1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired reset token", resp["message"])

	// Old password no longer works, the new one does
	rec, _ = do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "NewPassw0rd",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       "000000",
		"newPassword": "NewPassw0rd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired reset token", resp["message"])
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	s, m := newTestServer(t)
	signup(t, s, "Ann Lee", "ann@example.com")

	require.NoError(t, m.Resets().Create(context.Background(),
		"111111", "ann@example.com", time.Now().Add(-time.Minute)))

	rec, resp := do(t, s, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       "111111",
		"newPassword": "NewPassw0rd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Reset token has expired. Please request a new one.", resp["message"])
}
