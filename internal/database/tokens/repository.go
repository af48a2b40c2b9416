// Package tokens provides database operations for issued bearer tokens.
package tokens

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/entities"
)

var ErrTokenNotFound = errors.New("token not found")

// Repository handles all token database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tokens repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save persists an issued token.
func (r *Repository) Save(token *entities.Token) error {
	return r.db.Create(token).Error
}

// GetByToken retrieves a token row by its signed string.
func (r *Repository) GetByToken(signed string) (*entities.Token, error) {
	var token entities.Token
	err := r.db.Where("token = ?", signed).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Revoke marks a token as revoked so it stops validating immediately.
func (r *Repository) Revoke(signed string) error {
	result := r.db.Model(&entities.Token{}).
		Where("token = ?", signed).
		Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// MarkExpired flags all tokens whose expiry has passed. Returns the number
// of rows updated.
func (r *Repository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&entities.Token{}).
		Where("expires_at <= ? AND expired = ?", now, false).
		Update("expired", true)
	return result.RowsAffected, result.Error
}

// DeleteStale removes expired or revoked tokens older than the cutoff.
// Returns the number of rows deleted.
func (r *Repository) DeleteStale(cutoff time.Time) (int64, error) {
	result := r.db.Where("(expired = ? OR revoked = ?) AND created_at < ?", true, true, cutoff).
		Delete(&entities.Token{})
	return result.RowsAffected, result.Error
}
