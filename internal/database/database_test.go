package database

import (
	"testing"

	"postservice/internal/config"
	"postservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpenMigratesOutsideProduction(t *testing.T) {
	cfg := &config.Config{Env: "development"}

	db, err := Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	for _, table := range []string{"posts", "comments", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestOpenTranslatesDuplicateKeys(t *testing.T) {
	cfg := &config.Config{Env: "development"}

	db, err := Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Like{PostID: 1, UserID: "u"}).Error)

	err = db.Create(&models.Like{PostID: 1, UserID: "u"}).Error
	require.Error(t, err)
	// TranslateError must be on so the repository layer can classify this
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
