package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/badgerworks/honeybadger/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndMe(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"name":     "Ann Lee",
		"email":    "Ann@Example.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Account created successfully", resp["message"])

	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, "Ann Lee", user["name"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "password_hash")

	token := resp["token"].(string)
	rec, resp = do(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := resp["user"].(map[string]interface{})
	assert.Equal(t, "ann@example.com", me["email"])
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	s, _ := newTestServer(t)
	signup(t, s, "Ann Lee", "ann@example.com")

	rec, resp := do(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"name":     "Impostor",
		"email":    "ANN@example.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User already exists with this email", resp["message"])
}

func TestSignup_ValidationEnumeratesFields(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"name":     "A",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, resp["success"])

	errs, ok := resp["errors"].([]interface{})
	require.True(t, ok)

	fields := map[string]bool{}
	for _, e := range errs {
		fe := e.(map[string]interface{})
		fields[fe["field"].(string)] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)
	signup(t, s, "Ann Lee", "ann@example.com")

	rec, resp := do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ANN@EXAMPLE.COM",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["token"])

	rec, resp = do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "WrongPass1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp["message"])

	// Unknown account yields the same message as a wrong password
	rec, resp = do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp["message"])
}

func TestGuard_MissingToken(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Access token required", resp["message"])
}

func TestGuard_GarbageToken(t *testing.T) {
	s, _ := newTestServer(t)

	rec, resp := do(t, s, http.MethodGet, "/api/auth/me", "garbage", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", resp["message"])
}

func TestGuard_SignedTokenWithoutSession(t *testing.T) {
	s, _ := newTestServer(t)

	// Correctly signed, but never backed by a session row
	token, err := auth.IssueToken("u1", "ann@example.com", "Ann Lee", []byte("test-secret"))
	require.NoError(t, err)

	rec, resp := do(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", resp["message"])
}

func TestLogout_RevokesToken(t *testing.T) {
	s, _ := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")

	rec, _ := do(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := do(t, s, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", resp["message"])

	// The token is still validly signed but its session row is gone
	rec, resp = do(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", resp["message"])
}

func TestGuard_DisabledAccount(t *testing.T) {
	s, m := newTestServer(t)
	token := signup(t, s, "Ann Lee", "ann@example.com")

	user, err := m.Users().GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	require.NoError(t, m.Users().SetActive(context.Background(), user.ID, false))

	rec, resp := do(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account has been disabled", resp["message"])

	rec, resp = do(t, s, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ann@example.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Account has been disabled", resp["message"])
}
