package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/bookcatalog/internal/auth"
	"github.com/avoronov/bookcatalog/internal/database/reviews"
	"github.com/avoronov/bookcatalog/internal/entities"
)

type ReviewsController struct {
	repo *reviews.Repository
}

func NewReviewsController(repo *reviews.Repository) *ReviewsController {
	return &ReviewsController{repo: repo}
}

type reviewRequest struct {
	BookID uint64 `json:"book_id" binding:"required"`
	Rating int    `json:"rating"`
}

// Add creates a review authored by the caller.
func (controller *ReviewsController) Add(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := auth.GetIdentity(c)
	review := &entities.Review{
		BookID: req.BookID,
		UserID: identity.UserID,
		Rating: req.Rating,
	}
	if err := controller.repo.Create(review); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, review)
}

func (controller *ReviewsController) GetAll(c *gin.Context) {
	result, err := controller.repo.GetAll()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"reviews": result, "count": len(result)})
}

func (controller *ReviewsController) GetByBookID(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.Param("bookId"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	result, err := controller.repo.GetByBookID(bookID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"reviews": result, "count": len(result)})
}

func (controller *ReviewsController) GetByBookIDSortedByRating(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.Query("bookId"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "bookId query parameter is required"})
		return
	}

	limit, offset := pagination(c)
	result, err := controller.repo.GetByBookIDSortedByRating(bookID, limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"reviews": result, "count": len(result)})
}

// Update changes a review's rating. Only the review's author may update it;
// the caller's identity comes in explicitly from the auth middleware rather
// than any ambient state.
func (controller *ReviewsController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := controller.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, reviews.ErrReviewNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	identity := auth.GetIdentity(c)
	if existing.UserID != identity.UserID {
		c.IndentedJSON(http.StatusForbidden, gin.H{"error": "not authorized to update this review"})
		return
	}

	existing.Rating = req.Rating
	if err := controller.repo.Save(existing); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, existing)
}

// Delete removes a review. The author may delete their own review; admins
// may delete any.
func (controller *ReviewsController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	existing, err := controller.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, reviews.ErrReviewNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	identity := auth.GetIdentity(c)
	if existing.UserID != identity.UserID && !identity.HasRole(entities.RoleAdmin) {
		c.IndentedJSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this review"})
		return
	}

	if err := controller.repo.Delete(uint(id)); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
