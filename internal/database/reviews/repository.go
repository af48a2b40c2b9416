// Package reviews provides database operations for book reviews.
package reviews

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/entities"
)

var ErrReviewNotFound = errors.New("review not found")

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a review with its author loaded.
func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.Preload("User").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// GetAll retrieves all reviews.
func (r *Repository) GetAll() ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Find(&reviews).Error
	return reviews, err
}

// GetByBookID retrieves all reviews for a book.
func (r *Repository) GetByBookID(bookID uint64) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("book_id = ?", bookID).Find(&reviews).Error
	return reviews, err
}

// GetByBookIDSortedByRating retrieves a page of a book's reviews ordered by
// rating, highest first.
func (r *Repository) GetByBookIDSortedByRating(bookID uint64, limit, offset int) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("book_id = ?", bookID).
		Order("rating DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// Create persists a new review.
func (r *Repository) Create(review *entities.Review) error {
	return r.db.Create(review).Error
}

// Save overwrites an existing review.
func (r *Repository) Save(review *entities.Review) error {
	return r.db.Save(review).Error
}

// Delete removes a review by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
