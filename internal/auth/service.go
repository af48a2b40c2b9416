package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database/tokens"
	"github.com/avoronov/bookcatalog/internal/database/users"
	"github.com/avoronov/bookcatalog/internal/entities"
)

// usernamePattern: 3-64 chars, alphanumeric and underscore/hyphen only
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

// MinPasswordLength applies to passwords chosen at registration. Synthetic
// credentials created by the import pipeline bypass this check.
const MinPasswordLength = 8

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// Service handles registration, login, and token validation.
type Service struct {
	users  *users.Repository
	tokens *tokens.Repository
	jwt    *JWTService
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		users:  users.NewRepository(db),
		tokens: tokens.NewRepository(db),
		jwt:    NewJWTService(cfg),
		config: cfg,
	}
}

// Register creates a new user with the seeded USER role.
func (s *Service) Register(username, password string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if user already exists
	_, err := s.users.GetByUsername(username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	role, err := s.users.GetRoleByName(entities.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s role: %w", entities.RoleUser, err)
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username: username,
		Password: hash,
		Roles:    []entities.Role{*role},
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a persisted bearer token.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.Password); err != nil {
		return "", err
	}

	roleNames := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roleNames = append(roleNames, r.Name)
	}

	signed, expiresAt, err := s.jwt.Generate(user.ID, user.Username, roleNames)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	token := &entities.Token{
		Token:     signed,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Save(token); err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the JWT signature and the persisted token state, and
// returns the token's claims.
func (s *Service) ValidateToken(signed string) (*Claims, error) {
	claims, err := s.jwt.Validate(signed)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.tokens.GetByToken(signed)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if stored.Revoked {
		return nil, ErrTokenRevoked
	}
	if stored.Expired || time.Now().After(stored.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// RevokeToken marks a persisted token as revoked.
func (s *Service) RevokeToken(signed string) error {
	return s.tokens.Revoke(signed)
}
