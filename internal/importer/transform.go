package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/auth"
	"github.com/avoronov/bookcatalog/internal/database/users"
	"github.com/avoronov/bookcatalog/internal/entities"
)

// autoUserPrefix is prepended to the dataset user id when a review
// references a user that does not exist yet.
const autoUserPrefix = "User"

// bookFromRecord maps a raw book record onto a Book entity. The entity keeps
// the record's external book id as its primary key; numeric fields coerce to
// 0.0 when absent or malformed, string fields to nil when blank. This step
// performs no lookups and never rejects a row beyond the id parse itself.
func bookFromRecord(rec *BookRecord) (*entities.Book, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rec.BookID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid book_id %q: %w", rec.BookID, err)
	}

	return &entities.Book{
		ID:                      id,
		ISBN:                    optionalString(rec.ISBN),
		ISBN13:                  parseFloatOrZero(rec.ISBN13),
		Name:                    optionalString(rec.Authors),
		OriginalPublicationYear: parseFloatOrZero(rec.OriginalPublicationYear),
		OriginalTitle:           optionalString(rec.OriginalTitle),
		Title:                   optionalString(rec.Title),
		LangCode:                optionalString(rec.LanguageCode),
		ImageURL:                optionalString(rec.ImageURL),
		SmallImageURL:           optionalString(rec.SmallImageURL),
		RatingCount:             parseIntOrZero(rec.RatingsCount),
		RatingAvg:               parseFloatOrZero(rec.AverageRating),
	}, nil
}

// reviewFromRecord maps a raw review record onto a Review entity, resolving
// the referenced book and user against the store.
//
// A review whose book id has no match is an orphan: the row yields no entity
// and no error. An unknown user id is created on the fly with a synthetic
// username and a hash of the stringified id; the seeded USER role must exist
// or the whole run aborts. The second return reports whether a user was
// created.
func (j *Job) reviewFromRecord(tx *gorm.DB, rec *ReviewRecord) (*entities.Review, bool, error) {
	bookID, err := strconv.ParseUint(strings.TrimSpace(rec.BookID), 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("invalid book_id %q: %w", rec.BookID, err)
	}
	userID, err := strconv.ParseUint(strings.TrimSpace(rec.UserID), 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("invalid user_id %q: %w", rec.UserID, err)
	}

	var book entities.Book
	err = tx.First(&book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Orphan review: the dataset references a book that was never
		// imported. Dropped, not errored.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up book %d: %w", bookID, err)
	}

	userRepo := users.NewRepository(tx)
	createdUser := false

	user, err := userRepo.GetByID(userID)
	if errors.Is(err, users.ErrUserNotFound) {
		user, err = j.createUser(userRepo, userID)
		if err != nil {
			return nil, false, err
		}
		createdUser = true
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to look up user %d: %w", userID, err)
	}

	review := &entities.Review{
		BookID: book.ID,
		UserID: user.ID,
		Rating: parseIntOrZero(rec.Rating),
	}
	return review, createdUser, nil
}

// createUser persists a user derived from the dataset user id, keeping the
// id as the primary key. A missing USER role is fatal: a user may not exist
// without a role.
func (j *Job) createUser(repo *users.Repository, userID uint64) (*entities.User, error) {
	role, err := repo.GetRoleByName(entities.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("cannot create user %d: %s role is not found: %w",
			userID, entities.RoleUser, err)
	}

	idText := strconv.FormatUint(userID, 10)
	hash, err := auth.HashPassword(idText, j.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password for user %d: %w", userID, err)
	}

	user := &entities.User{
		ID:       userID,
		Username: autoUserPrefix + idText,
		Password: hash,
		Roles:    []entities.Role{*role},
	}
	if err := repo.CreateWithID(user); err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", userID, err)
	}
	return user, nil
}
