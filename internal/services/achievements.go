package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/localnerve/guau-api/internal/metrics"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WelcomeAchievementCode identifies the special achievement granted on request after signup
const WelcomeAchievementCode = "welcome"

// WelcomeResult is the outcome of GrantWelcomeAchievement
type WelcomeResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Achievement *models.Achievement `json:"achievement"`
}

// EvaluateUnlocks grants every kilometers achievement whose threshold is at or
// below totalKilometers and that the user does not hold yet. Returns only the
// achievements granted by this call.
func EvaluateUnlocks(ctx context.Context, db *gorm.DB, userID string, totalKilometers float64) ([]models.Achievement, error) {
	return evaluateThreshold(ctx, db, userID, models.AchievementKilometers, totalKilometers)
}

// EvaluateEventUnlocks does the same for events achievements against eventsCompleted
func EvaluateEventUnlocks(ctx context.Context, db *gorm.DB, userID string, eventsCompleted int) ([]models.Achievement, error) {
	return evaluateThreshold(ctx, db, userID, models.AchievementEvents, float64(eventsCompleted))
}

func evaluateThreshold(ctx context.Context, db *gorm.DB, userID, achievementType string, value float64) ([]models.Achievement, error) {
	db = db.WithContext(ctx)

	var candidates []models.Achievement
	err := db.Where("type = ? AND threshold <= ?", achievementType, value).
		Order("threshold ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Held grants only short-circuit; the unique index decides.
	var held []string
	if err := db.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Pluck("achievement_id", &held).Error; err != nil {
		return nil, fmt.Errorf("failed to load user achievements: %w", err)
	}
	heldSet := make(map[string]struct{}, len(held))
	for _, id := range held {
		heldSet[id] = struct{}{}
	}

	var granted []models.Achievement
	for _, a := range candidates {
		if _, ok := heldSet[a.ID]; ok {
			continue
		}
		ok, err := grantAchievement(ctx, db, userID, &a)
		if err != nil {
			return granted, err
		}
		if ok {
			granted = append(granted, a)
		}
	}
	return granted, nil
}

// grantAchievement inserts the grant and its notification together. It reports
// false without error when the user already holds the achievement.
func grantAchievement(ctx context.Context, db *gorm.DB, userID string, a *models.Achievement) (bool, error) {
	granted := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grant := models.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    nowFunc(),
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).Create(&grant)
		if res.Error != nil {
			if isDuplicateKey(res.Error) {
				return nil
			}
			return fmt.Errorf("failed to grant achievement %s: %w", a.Code, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		_, err := Notify(ctx, tx, userID, models.NotificationAchievement,
			"Achievement unlocked: "+a.Name,
			a.Description,
			map[string]any{"achievementId": a.ID, "code": a.Code, "icon": a.Icon})
		if err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if granted {
		metrics.AchievementsUnlocked.WithLabelValues(a.Type).Inc()
		slog.InfoContext(ctx, "achievement unlocked", "userId", userID, "achievement", a.Code)
	}
	return granted, nil
}

// GrantWelcomeAchievement grants the welcome achievement once. A repeat call
// reports Success=false with the achievement attached.
func GrantWelcomeAchievement(ctx context.Context, db *gorm.DB, userID string) (*WelcomeResult, error) {
	db = db.WithContext(ctx)

	welcome := models.Achievement{
		Code:        WelcomeAchievementCode,
		Name:        "Welcome to the pack",
		Description: "Joined the community",
		Icon:        "paw",
		Type:        models.AchievementSpecial,
	}
	// Present after seeding; created here when the catalog was not seeded.
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&welcome).Error
	if err != nil && !isDuplicateKey(err) {
		return nil, fmt.Errorf("failed to ensure welcome achievement: %w", err)
	}
	// welcome.ID holds the generated id even when the insert was skipped
	var found models.Achievement
	if err := db.Where("code = ?", WelcomeAchievementCode).First(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load welcome achievement: %w", err)
	}

	ok, err := grantAchievement(ctx, db, userID, &found)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &WelcomeResult{Success: false, Message: "Achievement already unlocked", Achievement: &found}, nil
	}
	return &WelcomeResult{Success: true, Message: "Achievement unlocked", Achievement: &found}, nil
}

// ListAchievements returns the catalog ordered by type and threshold
func ListAchievements(ctx context.Context, db *gorm.DB) ([]models.Achievement, error) {
	var out []models.Achievement
	if err := db.WithContext(ctx).Order("type, threshold, code").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return out, nil
}

// ListUserAchievements returns the user's grants, newest first, with the catalog entry
func ListUserAchievements(ctx context.Context, db *gorm.DB, userID string) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	err := db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}
	return out, nil
}

// AchievementInput describes a catalog entry created by an admin
type AchievementInput struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Type        string
	Threshold   float64
}

// CreateAchievement adds a catalog entry. Codes are unique.
func CreateAchievement(ctx context.Context, db *gorm.DB, in AchievementInput) (*models.Achievement, error) {
	switch in.Type {
	case models.AchievementKilometers, models.AchievementEvents, models.AchievementSpecial:
	default:
		return nil, fmt.Errorf("%w: unknown achievement type %q", ErrInvalidInput, in.Type)
	}
	if in.Threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", ErrInvalidInput)
	}

	a := models.Achievement{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Type:        in.Type,
		Threshold:   in.Threshold,
	}
	if err := db.WithContext(ctx).Create(&a).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAchievementExists
		}
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return &a, nil
}
