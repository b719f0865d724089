package databasetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger/models"
)

func TestCreateTempDB_Isolated(t *testing.T) {
	a := CreateTempDB(t)
	b := CreateTempDB(t)

	require.NoError(t, a.Create(&models.User{Username: "only-in-a", PwHash: "x"}).Error)

	var count int64
	require.NoError(t, b.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
