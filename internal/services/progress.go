package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// XPPerKilometer converts credited kilometers to experience points (floored)
	XPPerKilometer = 10
	// XPPerLevel is the experience needed for each level above 1
	XPPerLevel = 100
)

// LevelForXP returns the level reached with xp experience points
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return 1 + xp/XPPerLevel
}

// ExperienceFor returns the experience points earned for kilometers
func ExperienceFor(kilometers float64) int {
	return int(math.Floor(kilometers * XPPerKilometer))
}

// CreditProgress adds kilometersDelta and eventIncrement to the user's ledger.
// Counters are incremented in a single UPDATE; a missing row is inserted with
// the delta as its initial value. Pass a transaction handle to make the credit
// part of a larger unit of work.
func CreditProgress(ctx context.Context, db *gorm.DB, userID string, kilometersDelta float64, eventIncrement int) (*models.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if kilometersDelta < 0 || math.IsNaN(kilometersDelta) || math.IsInf(kilometersDelta, 0) {
		return nil, fmt.Errorf("%w: kilometers must be a non-negative number", ErrInvalidInput)
	}
	if eventIncrement != 0 && eventIncrement != 1 {
		return nil, fmt.Errorf("%w: event increment must be 0 or 1", ErrInvalidInput)
	}

	db = db.WithContext(ctx)
	xp := ExperienceFor(kilometersDelta)

	if kilometersDelta == 0 && eventIncrement == 0 {
		if err := EnsureProgress(ctx, db, userID); err != nil {
			return nil, err
		}
		return GetProgress(ctx, db, userID)
	}

	credited := false
	for attempt := 0; attempt < 2 && !credited; attempt++ {
		res := db.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"total_kilometers":  gorm.Expr("total_kilometers + ?", kilometersDelta),
				"events_completed":  gorm.Expr("events_completed + ?", eventIncrement),
				"experience_points": gorm.Expr("experience_points + ?", xp),
			})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to credit progress: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			credited = true
			break
		}

		// No row yet. A concurrent first credit may win the insert, in which
		// case the loop retries the update against its row.
		row := models.UserProgress{
			UserID:           userID,
			TotalKilometers:  kilometersDelta,
			EventsCompleted:  eventIncrement,
			ExperiencePoints: xp,
			CurrentLevel:     LevelForXP(xp),
		}
		ins := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&row)
		if ins.Error != nil && !isDuplicateKey(ins.Error) {
			return nil, fmt.Errorf("failed to create progress: %w", ins.Error)
		}
		credited = ins.Error == nil && ins.RowsAffected > 0
	}
	if !credited {
		// MySQL reports changed rows, so a credit too small to alter the stored
		// values updates nothing. The insert lost, so the row already exists.
		var existing int64
		if err := db.Model(&models.UserProgress{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to check progress: %w", err)
		}
		if existing == 0 {
			return nil, fmt.Errorf("failed to credit progress for user %s", userID)
		}
	}

	var progress models.UserProgress
	if err := db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	if level := LevelForXP(progress.ExperiencePoints); level > progress.CurrentLevel {
		if err := raiseLevel(ctx, db, &progress, level); err != nil {
			return nil, err
		}
	}

	return &progress, nil
}

// raiseLevel moves current_level up to level. The guard keeps concurrent
// credits from lowering it.
func raiseLevel(ctx context.Context, db *gorm.DB, progress *models.UserProgress, level int) error {
	res := db.Model(&models.UserProgress{}).
		Where("user_id = ? AND current_level < ?", progress.UserID, level).
		Update("current_level", level)
	if res.Error != nil {
		return fmt.Errorf("failed to update level: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	previous := progress.CurrentLevel
	progress.CurrentLevel = level

	_, err := Notify(ctx, db, progress.UserID, models.NotificationMilestone,
		fmt.Sprintf("Level %d reached", level),
		fmt.Sprintf("You climbed from level %d to level %d. Keep walking!", previous, level),
		map[string]any{"level": level, "previousLevel": previous})
	if err != nil {
		slog.WarnContext(ctx, "level-up notification failed", "userId", progress.UserID, "level", level, "error", err)
	}
	return nil
}

// EnsureProgress creates an empty ledger row for the user if none exists
func EnsureProgress(ctx context.Context, db *gorm.DB, userID string) error {
	row := models.UserProgress{UserID: userID, CurrentLevel: 1}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil && !isDuplicateKey(err) {
		return fmt.Errorf("failed to ensure progress: %w", err)
	}
	return nil
}

// GetProgress returns the user's ledger, or a zero ledger at level 1 when the
// user has not earned anything yet
func GetProgress(ctx context.Context, db *gorm.DB, userID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&progress).Error
	if isNotFound(err) {
		return &models.UserProgress{UserID: userID, CurrentLevel: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return &progress, nil
}
