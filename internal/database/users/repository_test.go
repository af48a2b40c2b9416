package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/entities"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Role{}, &entities.User{}))
	require.NoError(t, db.Create(&entities.Role{Name: entities.RoleUser}).Error)
	return NewRepository(db)
}

func TestRepository_CreateWithID(t *testing.T) {
	repo := setupRepo(t)

	role, err := repo.GetRoleByName(entities.RoleUser)
	require.NoError(t, err)

	user := &entities.User{
		ID:       314,
		Username: "User314",
		Password: "hash",
		Roles:    []entities.Role{*role},
	}
	require.NoError(t, repo.CreateWithID(user))

	t.Run("keeps the assigned id and roles", func(t *testing.T) {
		found, err := repo.GetByID(314)
		require.NoError(t, err)
		assert.Equal(t, "User314", found.Username)
		assert.True(t, found.HasRole(entities.RoleUser))
	})

	t.Run("rejects a zero id", func(t *testing.T) {
		err := repo.CreateWithID(&entities.User{Username: "NoID"})
		assert.Error(t, err)
	})
}

func TestRepository_GetByUsername(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Create(&entities.User{Username: "reader"}))

	found, err := repo.GetByUsername("reader")
	require.NoError(t, err)
	assert.NotZero(t, found.ID)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_GetRoleByName(t *testing.T) {
	repo := setupRepo(t)

	role, err := repo.GetRoleByName(entities.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleUser, role.Name)

	_, err = repo.GetRoleByName("MISSING")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupRepo(t)

	user := &entities.User{Username: "doomed"}
	require.NoError(t, repo.Create(user))
	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(user.ID), ErrUserNotFound)
}
