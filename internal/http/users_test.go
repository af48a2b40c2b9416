package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/bookcatalog/internal/entities"
)

func TestUsersEndpoints_AdminOnly(t *testing.T) {
	_, router := setupTestServer(t)
	token := registerAndLogin(t, router, "reader")

	w := doRequest(t, router, http.MethodGet, "/api/users/reader", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUsersController_GetByUsername(t *testing.T) {
	db, router := setupTestServer(t)
	registerAndLogin(t, router, "reader")
	token := loginAsAdmin(t, db, router, "admin")

	t.Run("returns the user without password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/users/reader", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "reader", response["username"])
		assert.NotContains(t, response, "password")
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/users/ghost", nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsersController_Delete(t *testing.T) {
	db, router := setupTestServer(t)
	registerAndLogin(t, router, "doomed")
	token := loginAsAdmin(t, db, router, "admin")

	var user entities.User
	require.NoError(t, db.DB.Where("username = ?", "doomed").First(&user).Error)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/users/doomed", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
