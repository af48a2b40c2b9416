package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/bookcatalog/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	t.Run("migrates all tables", func(t *testing.T) {
		for _, table := range []string{"books", "reviews", "users", "roles", "tokens", "import_runs"} {
			assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
		}
	})

	t.Run("seeds default roles", func(t *testing.T) {
		var roles []entities.Role
		require.NoError(t, db.DB.Find(&roles).Error)

		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		assert.ElementsMatch(t, []string{entities.RoleUser, entities.RoleAdmin}, names)
	})

	t.Run("reopening does not duplicate roles", func(t *testing.T) {
		again, err := NewDatabase(dbPath)
		require.NoError(t, err)
		defer again.Close()

		var count int64
		require.NoError(t, again.DB.Model(&entities.Role{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}
