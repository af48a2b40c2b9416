package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/bookcatalog/internal/auth"
	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database"
	"github.com/avoronov/bookcatalog/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T) (*database.Database, *gin.Engine) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authService := auth.NewService(db.DB, config.Auth{
		JWTSecret:   "test-secret",
		JWTIssuer:   "bookcatalog-test",
		TokenExpiry: time.Hour,
		BcryptCost:  4, // Low cost for faster tests
	})

	router := NewRouter(RouterConfig{
		Database:    db,
		AuthService: authService,
		Version:     "test",
	})
	return db, router
}

// doRequest performs a request against the router, optionally with a JSON
// body and bearer token.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "password12345"}
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["token"])
	return response["token"]
}

// grantAdmin assigns the ADMIN role to an existing user directly in the
// database. Tokens issued before the grant do not carry the new role, so
// call this before logging in.
func grantAdmin(t *testing.T, db *database.Database, username string) {
	t.Helper()

	var user entities.User
	require.NoError(t, db.DB.Where("username = ?", username).First(&user).Error)

	var role entities.Role
	require.NoError(t, db.DB.Where("name = ?", entities.RoleAdmin).First(&role).Error)
	require.NoError(t, db.DB.Model(&user).Association("Roles").Append(&role))
}

// loginAsAdmin registers a user, grants it ADMIN, and logs in.
func loginAsAdmin(t *testing.T, db *database.Database, router *gin.Engine, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "password12345"}
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	grantAdmin(t, db, username)

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["token"]
}

func strPtr(s string) *string {
	return &s
}
