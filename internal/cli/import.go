package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database"
	"github.com/avoronov/bookcatalog/internal/entities"
	"github.com/avoronov/bookcatalog/internal/importer"
)

// ImportCommand loads the book and rating CSV dumps into the catalog database.
type ImportCommand struct {
	BooksFile    string
	ReviewsFile  string
	DatabasePath string
	BcryptCost   int
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.BooksFile, "books", config.DefaultBooksFile, "Path to the books CSV file")
	fs.StringVar(&cmd.ReviewsFile, "reviews", config.DefaultReviewsFile, "Path to the ratings CSV file")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", config.DefaultBcryptCost, "Bcrypt cost used for generated user passwords")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books and ratings from CSV dumps into the catalog database.\n\n")
		fmt.Fprintf(os.Stderr, "Books are imported first; ratings that reference an unknown book are\n")
		fmt.Fprintf(os.Stderr, "skipped, and rating authors missing from the database are created on\n")
		fmt.Fprintf(os.Stderr, "the fly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -books data/books.csv -reviews data/ratings.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	fmt.Println("Catalog Import")
	fmt.Println("==============")

	for _, path := range []string{cmd.BooksFile, cmd.ReviewsFile} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", path)
		}
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Books:    %s\n", cmd.BooksFile)
	fmt.Printf("Reviews:  %s\n", cmd.ReviewsFile)
	fmt.Printf("Database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	job := importer.NewJob(db.DB, config.Import{
		BooksFile:   cmd.BooksFile,
		ReviewsFile: cmd.ReviewsFile,
	}, cmd.BcryptCost)

	run, err := job.Run(time.Now())
	if run != nil {
		fmt.Println("\n=== Import Summary ===")
		fmt.Printf("Books imported:   %d\n", run.BooksImported)
		fmt.Printf("Reviews imported: %d\n", run.ReviewsImported)
		fmt.Printf("Reviews skipped:  %d\n", run.ReviewsSkipped)
		fmt.Printf("Users created:    %d\n", run.UsersCreated)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if run != nil && run.Status != entities.ImportStatusCompleted {
		return fmt.Errorf("import finished with status %s: %s", run.Status, run.Error)
	}

	fmt.Println("\nImport complete!")
	return nil
}
