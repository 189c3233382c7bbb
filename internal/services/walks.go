package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/localnerve/guau-api/internal/metrics"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
)

// MaxWalkKilometers caps a single self-reported walk
const MaxWalkKilometers = 100

// WalkInput is a self-reported walk
type WalkInput struct {
	DogID           *string
	Kilometers      float64
	DurationMinutes int
	WalkedAt        *time.Time
	Notes           string
}

// WalkResult is the stored walk and the ledger after crediting it
type WalkResult struct {
	Walk     *models.Walk         `json:"walk"`
	Progress *models.UserProgress `json:"progress"`
	Unlocked []models.Achievement `json:"unlocked"`
}

// LogWalk stores the walk and credits its kilometers in one transaction, then
// evaluates kilometers achievements. Walks never count as events.
func LogWalk(ctx context.Context, db *gorm.DB, userID string, in WalkInput) (*WalkResult, error) {
	if in.Kilometers <= 0 || in.Kilometers > MaxWalkKilometers || math.IsNaN(in.Kilometers) {
		return nil, fmt.Errorf("%w: kilometers must be greater than 0 and at most %d", ErrInvalidInput, MaxWalkKilometers)
	}
	if in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	now := nowFunc()
	walkedAt := now
	if in.WalkedAt != nil {
		walkedAt = in.WalkedAt.UTC()
	}
	if walkedAt.After(now.Add(time.Hour)) {
		return nil, fmt.Errorf("%w: walkedAt is in the future", ErrInvalidInput)
	}

	walk := models.Walk{
		UserID:          userID,
		DogID:           in.DogID,
		Kilometers:      in.Kilometers,
		DurationMinutes: in.DurationMinutes,
		WalkedAt:        walkedAt,
		Notes:           in.Notes,
	}

	var progress *models.UserProgress
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.DogID != nil {
			var count int64
			if err := tx.Model(&models.Dog{}).Where("id = ? AND user_id = ?", *in.DogID, userID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to load dog: %w", err)
			}
			if count == 0 {
				return ErrDogNotFound
			}
		}

		if err := tx.Create(&walk).Error; err != nil {
			return fmt.Errorf("failed to log walk: %w", err)
		}

		var err error
		progress, err = CreditProgress(ctx, tx, userID, in.Kilometers, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.KilometersCredited.WithLabelValues("walk").Add(in.Kilometers)

	unlocked, err := EvaluateUnlocks(ctx, db, userID, progress.TotalKilometers)
	if err != nil {
		slog.WarnContext(ctx, "unlock evaluation after walk failed", "userId", userID, "error", err)
	}

	return &WalkResult{Walk: &walk, Progress: progress, Unlocked: unlocked}, nil
}

// ListWalks returns the user's walks, newest first
func ListWalks(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.Walk, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []models.Walk
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("walked_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list walks: %w", err)
	}
	return out, nil
}
