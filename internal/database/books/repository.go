// Package books provides database operations for catalog books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/entities"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book with this ISBN already exists")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by its ID with its reviews.
func (r *Repository) GetByID(id uint64) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Reviews").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// List retrieves a page of books with their reviews.
func (r *Repository) List(limit, offset int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Reviews").Limit(limit).Offset(offset).Find(&books).Error
	return books, err
}

// SearchByTitle retrieves books whose name contains the query (case-insensitive).
func (r *Repository) SearchByTitle(query string, limit, offset int) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + query + "%"
	err := r.db.Preload("Reviews").
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Limit(limit).Offset(offset).
		Find(&books).Error
	return books, err
}

// GetByISBN retrieves books matching the given ISBN.
func (r *Repository) GetByISBN(isbn string, limit, offset int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Reviews").
		Where("isbn = ?", isbn).
		Limit(limit).Offset(offset).
		Find(&books).Error
	return books, err
}

// ListSortedByTitle retrieves a page of books ordered by title ascending.
func (r *Repository) ListSortedByTitle(limit, offset int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Reviews").
		Order("title ASC").
		Limit(limit).Offset(offset).
		Find(&books).Error
	return books, err
}

// ListSortedByPublicationYear retrieves a page of books ordered by original
// publication year, newest first.
func (r *Repository) ListSortedByPublicationYear(limit, offset int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Reviews").
		Order("original_publication_year DESC").
		Limit(limit).Offset(offset).
		Find(&books).Error
	return books, err
}

// Create persists a new book with a generated ID. Books with a duplicate
// ISBN are rejected.
func (r *Repository) Create(book *entities.Book) error {
	if book.ISBN != nil {
		var existing entities.Book
		err := r.db.Where("isbn = ?", *book.ISBN).First(&existing).Error
		if err == nil {
			return ErrBookExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing book: %w", err)
		}
	}
	return r.db.Create(book).Error
}

// CreateWithID persists a book keeping the caller-assigned primary key.
// Used by the import pipeline, where identity comes from the source dataset
// rather than the database.
func (r *Repository) CreateWithID(book *entities.Book) error {
	if book.ID == 0 {
		return fmt.Errorf("book ID must be set for keyed insert")
	}
	return r.db.Create(book).Error
}

// Update overwrites an existing book's fields.
func (r *Repository) Update(id uint64, details *entities.Book) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	book.ISBN = details.ISBN
	book.ISBN13 = details.ISBN13
	book.Name = details.Name
	book.OriginalPublicationYear = details.OriginalPublicationYear
	book.OriginalTitle = details.OriginalTitle
	book.Title = details.Title
	book.LangCode = details.LangCode
	book.ImageURL = details.ImageURL
	book.SmallImageURL = details.SmallImageURL
	book.RatingCount = details.RatingCount
	book.RatingAvg = details.RatingAvg

	if err := r.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book and, through the cascade constraint, its reviews.
func (r *Repository) Delete(id uint64) error {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	// Reviews are owned by the book; drop them in the same unit of work.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
}
