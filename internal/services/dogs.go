package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
)

// DogInput describes a dog profile. PhotoURL points at externally hosted media.
type DogInput struct {
	Name      string
	Breed     string
	BirthDate *time.Time
	PhotoURL  string
}

// CreateDog adds a dog to the user's profile. Adding a dog starts the user's
// progress ledger if it does not exist yet.
func CreateDog(ctx context.Context, db *gorm.DB, userID string, in DogInput) (*models.Dog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	dog := models.Dog{
		UserID:    userID,
		Name:      name,
		Breed:     strings.TrimSpace(in.Breed),
		BirthDate: in.BirthDate,
		PhotoURL:  in.PhotoURL,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dog).Error; err != nil {
			return fmt.Errorf("failed to create dog: %w", err)
		}
		return EnsureProgress(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &dog, nil
}

// ListDogs returns the user's dogs
func ListDogs(ctx context.Context, db *gorm.DB, userID string) ([]models.Dog, error) {
	var out []models.Dog
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	return out, nil
}

// DeleteDog removes one of the user's dogs. Walks keep their dog reference.
func DeleteDog(ctx context.Context, db *gorm.DB, userID, dogID string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", dogID, userID).Delete(&models.Dog{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete dog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDogNotFound
	}
	return nil
}
