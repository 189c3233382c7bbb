package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBType:     "sqlite",
		DBDatabase: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
}

func TestDialectorUnsupported(t *testing.T) {
	_, err := Dialector(&config.Config{DBType: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestDialectorNames(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
	}{
		{"mysql", "mysql"},
		{"mariadb", "mysql"},
		{"postgres", "postgres"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
		{"sqlserver", "sqlserver"},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			d, err := Dialector(&config.Config{
				DBType: tt.dbType, DBHost: "localhost", DBPort: "1", DBDatabase: "guau", DBUser: "guau",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestConnectMigrateSeed(t *testing.T) {
	db, err := Connect(memoryConfig(), nil)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))

	ctx := context.Background()
	require.NoError(t, SeedCatalog(ctx, db))
	// second run must not duplicate
	require.NoError(t, SeedCatalog(ctx, db))

	var welcome int64
	require.NoError(t, db.Model(&models.Achievement{}).Where("code = ?", "welcome").Count(&welcome).Error)
	assert.Equal(t, int64(1), welcome)

	var kilometerTiers int64
	require.NoError(t, db.Model(&models.Achievement{}).
		Where("type = ?", models.AchievementKilometers).Count(&kilometerTiers).Error)
	assert.Equal(t, int64(5), kilometerTiers)

	var cfg models.AppConfig
	require.NoError(t, db.First(&cfg, "config_key = ?", "leaderboard_size").Error)
	assert.True(t, cfg.Public)
	assert.JSONEq(t, "10", string(cfg.Value.JSON))
}
