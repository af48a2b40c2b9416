// Package importer loads the two CSV datasets (books, then reviews) into
// the catalog store as a single batch job.
//
// Each record commits as its own unit of work, so an aborted run keeps the
// records imported before the failure. Books import fully before reviews,
// because reviews resolve their books by id.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database/books"
	"github.com/avoronov/bookcatalog/internal/database/reviews"
	"github.com/avoronov/bookcatalog/internal/entities"
)

// Job runs one import of the configured book and review files.
type Job struct {
	db          *gorm.DB
	booksFile   string
	reviewsFile string
	bcryptCost  int
}

// NewJob creates an import job.
func NewJob(db *gorm.DB, cfg config.Import, bcryptCost int) *Job {
	return &Job{
		db:          db,
		booksFile:   cfg.BooksFile,
		reviewsFile: cfg.ReviewsFile,
		bcryptCost:  bcryptCost,
	}
}

// Run executes the job. The runAt timestamp distinguishes repeated runs in
// the import_runs table. The returned ImportRun reflects the final state of
// the run even when an error is also returned.
func (j *Job) Run(runAt time.Time) (*entities.ImportRun, error) {
	run := &entities.ImportRun{
		RunAt:     runAt,
		Status:    entities.ImportStatusRunning,
		StartedAt: time.Now(),
	}
	if err := j.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record import run: %w", err)
	}

	log.Printf("Import job started (run %d, time=%d)", run.ID, runAt.UnixMilli())

	err := j.runPhases(run)

	now := time.Now()
	run.CompletedAt = &now
	if err != nil {
		run.Status = entities.ImportStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = entities.ImportStatusCompleted
	}
	if saveErr := j.db.Save(run).Error; saveErr != nil {
		log.Printf("Failed to record import run state: %v", saveErr)
	}

	log.Printf("Import job finished with status %s (books=%d, reviews=%d, skipped=%d, users=%d)",
		run.Status, run.BooksImported, run.ReviewsImported, run.ReviewsSkipped, run.UsersCreated)

	return run, err
}

func (j *Job) runPhases(run *entities.ImportRun) error {
	if err := j.bookPhase(run); err != nil {
		return fmt.Errorf("book phase: %w", err)
	}
	if err := j.reviewPhase(run); err != nil {
		return fmt.Errorf("review phase: %w", err)
	}
	return nil
}

// bookPhase imports every row of the books file, one record per commit.
func (j *Job) bookPhase(run *entities.ImportRun) error {
	file, err := os.Open(j.booksFile)
	if err != nil {
		return fmt.Errorf("failed to open books file: %w", err)
	}
	defer file.Close()

	reader := NewBookReader(file)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read book record: %w", err)
		}

		book, err := bookFromRecord(rec)
		if err != nil {
			return err
		}

		err = j.db.Transaction(func(tx *gorm.DB) error {
			return books.NewRepository(tx).CreateWithID(book)
		})
		if err != nil {
			return fmt.Errorf("failed to save book %d: %w", book.ID, err)
		}
		run.BooksImported++
	}
	return nil
}

// reviewPhase imports every row of the reviews file. A record's net effect
// (the review plus, possibly, a newly created user) commits together before
// the next record is read. Orphan rows are counted and dropped.
func (j *Job) reviewPhase(run *entities.ImportRun) error {
	file, err := os.Open(j.reviewsFile)
	if err != nil {
		return fmt.Errorf("failed to open reviews file: %w", err)
	}
	defer file.Close()

	reader := NewReviewReader(file)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read review record: %w", err)
		}

		skipped := false
		createdUser := false
		err = j.db.Transaction(func(tx *gorm.DB) error {
			review, created, err := j.reviewFromRecord(tx, rec)
			if err != nil {
				return err
			}
			if review == nil {
				skipped = true
				return nil
			}
			if err := reviews.NewRepository(tx).Create(review); err != nil {
				return fmt.Errorf("failed to save review: %w", err)
			}
			createdUser = created
			return nil
		})
		if err != nil {
			return err
		}

		if createdUser {
			run.UsersCreated++
		}
		if skipped {
			run.ReviewsSkipped++
		} else {
			run.ReviewsImported++
		}
	}
	return nil
}
