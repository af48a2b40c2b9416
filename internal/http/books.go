package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/bookcatalog/internal/database/books"
	"github.com/avoronov/bookcatalog/internal/entities"
)

type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

func (controller *BooksController) List(c *gin.Context) {
	limit, offset := pagination(c)
	result, err := controller.repo.List(limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

func (controller *BooksController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	book, err := controller.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) SearchByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title query parameter is required"})
		return
	}

	limit, offset := pagination(c)
	result, err := controller.repo.SearchByTitle(title, limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

func (controller *BooksController) GetByISBN(c *gin.Context) {
	isbn := c.Query("isbn")
	if isbn == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "isbn query parameter is required"})
		return
	}

	limit, offset := pagination(c)
	result, err := controller.repo.GetByISBN(isbn, limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

func (controller *BooksController) ListSortedByTitle(c *gin.Context) {
	limit, offset := pagination(c)
	result, err := controller.repo.ListSortedByTitle(limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

func (controller *BooksController) ListSortedByPublicationYear(c *gin.Context) {
	limit, offset := pagination(c)
	result, err := controller.repo.ListSortedByPublicationYear(limit, offset)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

func (controller *BooksController) Create(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := controller.repo.Create(&book); err != nil {
		if errors.Is(err, books.ErrBookExists) {
			c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, book)
}

func (controller *BooksController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var details entities.Book
	if err := c.ShouldBindJSON(&details); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := controller.repo.Update(id, &details)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := controller.repo.Delete(id); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
