// Package users provides database operations for users and roles.
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)

// Repository handles all user and role database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user with roles loaded.
func (r *Repository) GetByID(id uint64) (*entities.User, error) {
	var user entities.User
	err := r.db.Preload("Roles").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username with roles loaded.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new user with a generated ID.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// CreateWithID persists a user keeping the caller-assigned primary key.
// The import pipeline uses this so review rows can reference users by the
// IDs found in the source dataset.
func (r *Repository) CreateWithID(user *entities.User) error {
	if user.ID == 0 {
		return fmt.Errorf("user ID must be set for keyed insert")
	}
	return r.db.Create(user).Error
}

// Update overwrites an existing user.
func (r *Repository) Update(user *entities.User) (*entities.User, error) {
	var existing entities.User
	err := r.db.First(&existing, user.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by ID.
func (r *Repository) Delete(id uint64) error {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return r.db.Delete(&user).Error
}

// GetRoleByName retrieves a seeded role by its name.
func (r *Repository) GetRoleByName(name string) (*entities.Role, error) {
	var role entities.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}
