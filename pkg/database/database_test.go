package database

import (
	"path/filepath"
	"testing"
	"time"

	"learnpath_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBAppliesPoolSettings(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		SQLitePath:      filepath.Join(t.TempDir(), "learnpath.db"),
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 30 * time.Minute,
	}

	db, err := InitDB(cfg, "test")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("roadmaps"))
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}, "test")
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}
