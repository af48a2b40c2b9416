package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/bookcatalog/internal/database/users"
	"github.com/avoronov/bookcatalog/internal/entities"
)

type UsersController struct {
	repo *users.Repository
}

func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{repo: repo}
}

func (controller *UsersController) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	user, err := controller.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, user)
}

func (controller *UsersController) Update(c *gin.Context) {
	var user entities.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user.ID == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	updated, err := controller.repo.Update(&user)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

func (controller *UsersController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := controller.repo.Delete(id); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
