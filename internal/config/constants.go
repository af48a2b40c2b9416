package config

// Default paths for the database and import datasets
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./bookcatalog.db"

	// DefaultBooksFile is the default path for the books CSV dataset
	DefaultBooksFile = "./data/books.csv"

	// DefaultReviewsFile is the default path for the reviews CSV dataset
	DefaultReviewsFile = "./data/ratings.csv"
)

// DefaultBcryptCost is used for hashing passwords unless overridden
const DefaultBcryptCost = 12
