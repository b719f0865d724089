package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger/models"
)

func TestNewSQLite_Migrates(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := NewSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestSQLiteParams(t *testing.T) {
	assert.Equal(t, "?_foreign_keys=on", sqliteParams("blog.db"))
	assert.Equal(t, "&_foreign_keys=on", sqliteParams("file:x?mode=memory"))
}
