// Package auth provides authentication and authorization for the catalog API.
//
// Clients authenticate with username/password against the local user
// database and receive a signed JWT. Issued tokens are persisted so they can
// be revoked individually; the middleware validates both the signature and
// the stored token row on every request.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<signing secret>  # Generated at startup if empty
//	AUTH_JWT_ISSUER=bookcatalog
//	AUTH_TOKEN_EXPIRY=24h
//	AUTH_BCRYPT_COST=12               # bcrypt cost factor
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(db.DB, cfg.Auth)
//	middleware := auth.NewMiddleware(authService)
//	protected.Use(middleware.RequireAuth())
//	admin.Use(middleware.RequireRole(entities.RoleAdmin))
//
// Extract the caller in handlers:
//
//	identity := auth.GetIdentity(c)
package auth
