package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avoronov/bookcatalog/internal/auth"
	"github.com/avoronov/bookcatalog/internal/database"
	"github.com/avoronov/bookcatalog/internal/database/books"
	"github.com/avoronov/bookcatalog/internal/database/reviews"
	"github.com/avoronov/bookcatalog/internal/database/users"
	"github.com/avoronov/bookcatalog/internal/entities"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Database    *database.Database
	AuthService *auth.Service
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	db := cfg.Database.DB
	booksController := NewBooksController(books.NewRepository(db))
	reviewsController := NewReviewsController(reviews.NewRepository(db))
	usersController := NewUsersController(users.NewRepository(db))
	authController := NewAuthController(cfg.AuthService)
	healthController := NewHealthController(cfg.Database, cfg.Version)

	middleware := auth.NewMiddleware(cfg.AuthService)

	router.GET("/health", healthController.Status)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", middleware.RequireAuth(), authController.Logout)
	}

	booksGroup := api.Group("/books", middleware.RequireAuth())
	{
		booksGroup.GET("", booksController.List)
		booksGroup.GET("/sorted-by-title", booksController.ListSortedByTitle)
		booksGroup.GET("/sorted-by-year", booksController.ListSortedByPublicationYear)
		booksGroup.GET("/search", booksController.SearchByTitle)
		booksGroup.GET("/isbn", booksController.GetByISBN)
		booksGroup.GET("/:id", booksController.GetByID)

		admin := booksGroup.Group("", middleware.RequireRole(entities.RoleAdmin))
		{
			admin.POST("", booksController.Create)
			admin.PUT("/:id", booksController.Update)
			admin.DELETE("/:id", booksController.Delete)
		}
	}

	reviewsGroup := api.Group("/reviews", middleware.RequireAuth())
	{
		reviewsGroup.POST("", middleware.RequireRole(entities.RoleUser), reviewsController.Add)
		reviewsGroup.GET("", reviewsController.GetAll)
		reviewsGroup.GET("/book/:bookId", reviewsController.GetByBookID)
		reviewsGroup.GET("/sorted-by-rating", reviewsController.GetByBookIDSortedByRating)
		reviewsGroup.PUT("/:reviewId", middleware.RequireRole(entities.RoleUser), reviewsController.Update)
		reviewsGroup.DELETE("/:reviewId", reviewsController.Delete)
	}

	usersGroup := api.Group("/users", middleware.RequireAuth(), middleware.RequireRole(entities.RoleAdmin))
	{
		usersGroup.GET("/:username", usersController.GetByUsername)
		usersGroup.PUT("", usersController.Update)
		usersGroup.DELETE("/:userId", usersController.Delete)
	}

	return router
}
