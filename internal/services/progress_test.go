package services

import (
	"context"
	"sync"
	"testing"

	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 6, LevelForXP(550))
	assert.Equal(t, 1, LevelForXP(-5))
}

func TestExperienceFor(t *testing.T) {
	assert.Equal(t, 45, ExperienceFor(4.59))
	assert.Equal(t, 0, ExperienceFor(0.09))
	assert.Equal(t, 100, ExperienceFor(10))
}

func TestCreditProgressCreatesRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ana")

	progress, err := CreditProgress(ctx, db, user.ID, 12.34, 1)
	require.NoError(t, err)

	assert.InDelta(t, 12.34, progress.TotalKilometers, 1e-9)
	assert.Equal(t, 1, progress.EventsCompleted)
	assert.Equal(t, 123, progress.ExperiencePoints)
	assert.Equal(t, 2, progress.CurrentLevel)
}

func TestCreditProgressIncrements(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ben")

	_, err := CreditProgress(ctx, db, user.ID, 5, 0)
	require.NoError(t, err)
	progress, err := CreditProgress(ctx, db, user.ID, 7.5, 1)
	require.NoError(t, err)

	assert.InDelta(t, 12.5, progress.TotalKilometers, 1e-9)
	assert.Equal(t, 1, progress.EventsCompleted)
	assert.Equal(t, 50+75, progress.ExperiencePoints)
	assert.Equal(t, int64(1), countRows(t, db, &models.UserProgress{}, "user_id = ?", user.ID))
}

func TestCreditProgressLevelUpNotifies(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "cris")

	_, err := CreditProgress(ctx, db, user.ID, 5, 0)
	require.NoError(t, err)
	progress, err := CreditProgress(ctx, db, user.ID, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, progress.CurrentLevel)
	assert.Equal(t, int64(1), countRows(t, db, &models.Notification{},
		"user_id = ? AND type = ?", user.ID, models.NotificationMilestone))
}

func TestCreditProgressRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := CreditProgress(ctx, db, "u1", -1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CreditProgress(ctx, db, "u1", 1, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CreditProgress(ctx, db, "", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreditProgressZeroDeltaEnsuresRow(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "dani")

	progress, err := CreditProgress(context.Background(), db, user.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentLevel)
	assert.Equal(t, int64(1), countRows(t, db, &models.UserProgress{}, "user_id = ?", user.ID))
}

func TestCreditProgressUnchangedRowCountsAsCredited(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "mateo")
	_, err := CreditProgress(ctx, db, user.ID, 5, 0)
	require.NoError(t, err)

	// report changed rows instead of matched rows, as MySQL does
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:changed_rows", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_progress" {
			tx.RowsAffected = 0
		}
	}))

	progress, err := CreditProgress(ctx, db, user.ID, 1e-300, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, progress.TotalKilometers)
	assert.Equal(t, 0, progress.EventsCompleted)
}

func TestCreditProgressConcurrentCreditsSum(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "eva")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := CreditProgress(ctx, db, user.ID, 1.5, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	progress, err := GetProgress(ctx, db, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30, progress.TotalKilometers, 1e-9)
	assert.Equal(t, workers, progress.EventsCompleted)
	assert.Equal(t, workers*15, progress.ExperiencePoints)
	assert.Equal(t, LevelForXP(workers*15), progress.CurrentLevel)
}

func TestGetProgressWithoutRow(t *testing.T) {
	db := setupTestDB(t)

	progress, err := GetProgress(context.Background(), db, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentLevel)
	assert.Zero(t, progress.TotalKilometers)
	assert.Equal(t, int64(0), countRows(t, db, &models.UserProgress{}, "user_id = ?", "nobody"))
}

func TestEnsureProgressIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureProgress(ctx, db, "u1"))
	require.NoError(t, EnsureProgress(ctx, db, "u1"))
	assert.Equal(t, int64(1), countRows(t, db, &models.UserProgress{}, "user_id = ?", "u1"))
}
