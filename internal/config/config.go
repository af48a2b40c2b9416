package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Import
		TokenCleanup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret   string
		JWTIssuer   string
		TokenExpiry time.Duration
		BcryptCost  int
	}
	Import struct {
		BooksFile   string
		ReviewsFile string
		OnStart     bool // run the CSV import before serving
	}
	TokenCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "") // generated at startup if empty
	v.SetDefault("auth_jwt_issuer", "bookcatalog")
	v.SetDefault("auth_token_expiry", "24h")
	v.SetDefault("auth_bcrypt_cost", DefaultBcryptCost)

	// Import defaults
	v.SetDefault("import_books_file", DefaultBooksFile)
	v.SetDefault("import_reviews_file", DefaultReviewsFile)
	v.SetDefault("import_on_start", false)

	// Token cleanup defaults
	v.SetDefault("token_cleanup_enabled", true)
	v.SetDefault("token_cleanup_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:   v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer:   v.GetString("AUTH_JWT_ISSUER"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
		},
		Import: Import{
			BooksFile:   v.GetString("IMPORT_BOOKS_FILE"),
			ReviewsFile: v.GetString("IMPORT_REVIEWS_FILE"),
			OnStart:     v.GetBool("IMPORT_ON_START"),
		},
		TokenCleanup: TokenCleanup{
			Enabled:  v.GetBool("TOKEN_CLEANUP_ENABLED"),
			Schedule: v.GetString("TOKEN_CLEANUP_SCHEDULE"),
		},
	}
}
