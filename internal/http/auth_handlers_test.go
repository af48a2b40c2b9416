package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Register(t *testing.T) {
	_, router := setupTestServer(t)

	t.Run("registers a new user", func(t *testing.T) {
		body := map[string]string{"username": "reader", "password": "password12345"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "reader", response["username"])
		assert.NotZero(t, response["id"])
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		body := map[string]string{"username": "reader", "password": "password12345"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		body := map[string]string{"username": "reader2", "password": "short"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		body := map[string]string{"username": "reader3"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	_, router := setupTestServer(t)

	creds := map[string]string{"username": "reader", "password": "password12345"}
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("valid credentials return a token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", creds, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response["token"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		body := map[string]string{"username": "reader", "password": "wrong-password"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		body := map[string]string{"username": "ghost", "password": "password12345"}
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthController_Logout(t *testing.T) {
	_, router := setupTestServer(t)
	token := registerAndLogin(t, router, "reader")

	// The token works before logout
	w := doRequest(t, router, http.MethodGet, "/api/books", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Revoked token no longer authenticates
	w = doRequest(t, router, http.MethodGet, "/api/books", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
