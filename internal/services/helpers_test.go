package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/database"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory database with the schema and catalog
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBType:     "sqlite",
		DBDatabase: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.Connect(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedCatalog(context.Background(), db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Name: name, Role: models.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createEvent(t *testing.T, db *gorm.DB, name string, when time.Time, km float64, max *int) *models.EventRoute {
	t.Helper()
	e := &models.EventRoute{
		Name:                 name,
		EventDate:            when,
		Location:             "Parque del Retiro",
		Kilometers:           km,
		MaxParticipants:      max,
		RequiresConfirmation: true,
		IsActive:             true,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func createEntryCode(t *testing.T, db *gorm.DB, code, eventID string, km float64, expiresAt *time.Time) *models.EntryCode {
	t.Helper()
	c := &models.EntryCode{Code: code, EventRouteID: eventID, Kilometers: km, ExpiresAt: expiresAt}
	require.NoError(t, db.Create(c).Error)
	return c
}

func setProgress(t *testing.T, db *gorm.DB, userID string, km float64) {
	t.Helper()
	p := &models.UserProgress{
		UserID:           userID,
		TotalKilometers:  km,
		ExperiencePoints: ExperienceFor(km),
		CurrentLevel:     LevelForXP(ExperienceFor(km)),
	}
	require.NoError(t, db.Create(p).Error)
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

// freezeClock pins nowFunc for the duration of the test
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = orig })
}
