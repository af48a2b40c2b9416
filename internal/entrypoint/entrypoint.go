package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/bookcatalog/internal/auth"
	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database"
	http_controllers "github.com/avoronov/bookcatalog/internal/http"
	"github.com/avoronov/bookcatalog/internal/importer"
	"github.com/avoronov/bookcatalog/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the cleanup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Catalog v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Optionally run the CSV import before accepting traffic
	if cfg.Import.OnStart {
		job := importer.NewJob(db.DB, cfg.Import, cfg.Auth.BcryptCost)
		if _, err := job.Run(time.Now()); err != nil {
			log.Fatalf("Startup import failed: %v", err)
		}
	}

	// Generate a signing secret when none is configured. Tokens issued
	// under a generated secret do not survive a restart.
	if cfg.Auth.JWTSecret == "" {
		secret, err := auth.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.Auth.JWTSecret = secret
		log.Printf("Generated JWT secret (set AUTH_JWT_SECRET to persist)")
	}

	authService := auth.NewService(db.DB, cfg.Auth)

	// Start the expired-token cleanup scheduler
	tokenCleanup := scheduler.NewTokenCleanupScheduler(db.DB, cfg.TokenCleanup)
	if err := tokenCleanup.Start(); err != nil {
		log.Fatalf("Failed to start token cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    db,
		AuthService: authService,
		Version:     version,
	})

	onShutdown := func(ctx context.Context) {
		tokenCleanup.Stop()
	}

	Serve(router, cfg, onShutdown)
}
