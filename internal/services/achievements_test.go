package services

import (
	"context"
	"sync"
	"testing"

	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codesOf(list []models.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Code)
	}
	return out
}

func TestEvaluateUnlocksGrantsCrossedThresholds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "fer")
	setProgress(t, db, user.ID, 45)

	progress, err := CreditProgress(ctx, db, user.ID, 10, 0)
	require.NoError(t, err)
	require.InDelta(t, 55, progress.TotalKilometers, 1e-9)

	granted, err := EvaluateUnlocks(ctx, db, user.ID, progress.TotalKilometers)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"km-10", "km-50"}, codesOf(granted))

	assert.Equal(t, int64(2), countRows(t, db, &models.UserAchievement{}, "user_id = ?", user.ID))
	assert.Equal(t, int64(2), countRows(t, db, &models.Notification{},
		"user_id = ? AND type = ?", user.ID, models.NotificationAchievement))
}

func TestEvaluateUnlocksIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "gil")

	first, err := EvaluateUnlocks(ctx, db, user.ID, 120)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"km-10", "km-50", "km-100"}, codesOf(first))

	second, err := EvaluateUnlocks(ctx, db, user.ID, 120)
	require.NoError(t, err)
	assert.Empty(t, second)

	assert.Equal(t, int64(3), countRows(t, db, &models.UserAchievement{}, "user_id = ?", user.ID))
	assert.Equal(t, int64(3), countRows(t, db, &models.Notification{}, "user_id = ?", user.ID))
}

func TestEvaluateUnlocksConcurrentGrantsOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "hugo")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted, err := EvaluateUnlocks(ctx, db, user.ID, 60)
			if err == nil {
				results <- len(granted)
			}
		}()
	}
	wg.Wait()
	close(results)

	total := 0
	for n := range results {
		total += n
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, int64(2), countRows(t, db, &models.UserAchievement{}, "user_id = ?", user.ID))
}

func TestGrantAchievementSwallowsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ines")

	var a models.Achievement
	require.NoError(t, db.Where("code = ?", "km-10").First(&a).Error)

	// a grant that bypassed the pre-check
	require.NoError(t, db.Create(&models.UserAchievement{UserID: user.ID, AchievementID: a.ID, UnlockedAt: nowFunc()}).Error)

	ok, err := grantAchievement(ctx, db, user.ID, &a)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), countRows(t, db, &models.Notification{}, "user_id = ?", user.ID))
}

func TestEvaluateEventUnlocks(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "javi")

	granted, err := EvaluateEventUnlocks(context.Background(), db, user.ID, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"events-1", "events-5"}, codesOf(granted))
}

func TestGrantWelcomeAchievement(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "kai")

	res, err := GrantWelcomeAchievement(ctx, db, user.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, WelcomeAchievementCode, res.Achievement.Code)

	again, err := GrantWelcomeAchievement(ctx, db, user.ID)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, "Achievement already unlocked", again.Message)
	assert.Equal(t, res.Achievement.ID, again.Achievement.ID)
	assert.Equal(t, int64(1), countRows(t, db, &models.UserAchievement{}, "user_id = ?", user.ID))

	// a second member still resolves the catalog row
	other := createUser(t, db, "kira")
	res, err = GrantWelcomeAchievement(ctx, db, other.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, again.Achievement.ID, res.Achievement.ID)
}

func TestGrantWelcomeAchievementWithoutCatalog(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "lia")
	require.NoError(t, db.Where("code = ?", WelcomeAchievementCode).Delete(&models.Achievement{}).Error)

	res, err := GrantWelcomeAchievement(ctx, db, user.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.AchievementSpecial, res.Achievement.Type)

	again, err := GrantWelcomeAchievement(ctx, db, user.ID)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, res.Achievement.ID, again.Achievement.ID)
	assert.Equal(t, int64(1), countRows(t, db, &models.Achievement{}, "code = ?", WelcomeAchievementCode))
	assert.Equal(t, int64(1), countRows(t, db, &models.UserAchievement{}, "user_id = ?", user.ID))
}

func TestCreateAchievement(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a, err := CreateAchievement(ctx, db, AchievementInput{Code: "km-1000", Name: "Legend", Type: models.AchievementKilometers, Threshold: 1000})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	_, err = CreateAchievement(ctx, db, AchievementInput{Code: "km-1000", Name: "Again", Type: models.AchievementKilometers})
	assert.ErrorIs(t, err, ErrAchievementExists)

	_, err = CreateAchievement(ctx, db, AchievementInput{Code: "x", Name: "x", Type: "steps"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListUserAchievements(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "mar")

	_, err := EvaluateUnlocks(ctx, db, user.ID, 10)
	require.NoError(t, err)

	list, err := ListUserAchievements(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Achievement)
	assert.Equal(t, "km-10", list[0].Achievement.Code)

	catalog, err := ListAchievements(ctx, db)
	require.NoError(t, err)
	assert.Len(t, catalog, 9)
}
