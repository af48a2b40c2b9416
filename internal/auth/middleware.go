package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated caller
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyRoles    = "auth_roles"
)

// Identity describes the authenticated caller of a request. Handlers pass
// it explicitly into service operations that need to authorize by owner or
// role, instead of reading ambient state.
type Identity struct {
	UserID   uint64
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the named role.
func (i Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth rejects requests without a valid bearer token and injects the
// caller's identity into the gin context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.tryBearerAuth(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRoles, claims.Roles)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose caller holds none of the
// given roles. Must run after RequireAuth.
func (m *Middleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		for _, required := range roles {
			if identity.HasRole(required) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient permissions",
		})
	}
}

// tryBearerAuth attempts to authenticate using the Authorization header.
func (m *Middleware) tryBearerAuth(c *gin.Context) *Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	claims, err := m.service.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return claims
}

// GetIdentity extracts the authenticated caller from the gin context.
// Returns a zero Identity if the request was not authenticated.
func GetIdentity(c *gin.Context) Identity {
	identity := Identity{}
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint64); ok {
			identity.UserID = id
		}
	}
	if v, ok := c.Get(ContextKeyUsername); ok {
		if name, ok := v.(string); ok {
			identity.Username = name
		}
	}
	if v, ok := c.Get(ContextKeyRoles); ok {
		if roles, ok := v.([]string); ok {
			identity.Roles = roles
		}
	}
	return identity
}
