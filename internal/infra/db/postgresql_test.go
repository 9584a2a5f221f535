package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pingModel struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestDatabase_Lifecycle(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	database := NewDatabase(conn)
	require.NoError(t, database.DB().AutoMigrate(&pingModel{}))
	assert.True(t, database.DB().Migrator().HasTable(&pingModel{}))

	assert.NoError(t, database.HealthCheck(context.Background()))
	require.NoError(t, database.Close())
	assert.Error(t, database.HealthCheck(context.Background()))
}
