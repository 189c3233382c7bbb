package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localnerve/guau-api/data"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogConfigEntry struct {
	Key    string          `json:"key"`
	Public bool            `json:"public"`
	Value  json.RawMessage `json:"value"`
}

// SeedCatalog upserts the embedded achievement catalog by code and inserts
// missing default config keys. Safe to run on every start.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	var achievements []models.Achievement
	if err := json.Unmarshal(data.CatalogAchievements, &achievements); err != nil {
		return fmt.Errorf("failed to parse achievement catalog: %w", err)
	}

	var entries []catalogConfigEntry
	if err := json.Unmarshal(data.CatalogConfig, &entries); err != nil {
		return fmt.Errorf("failed to parse config catalog: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range achievements {
			a := &achievements[i]
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "type", "threshold"}),
			}).Create(a).Error
			if err != nil {
				return fmt.Errorf("failed to seed achievement %s: %w", a.Code, err)
			}
		}

		for _, e := range entries {
			row := models.AppConfig{
				Key:    e.Key,
				Public: e.Public,
				Value:  models.JSON{JSON: datatypes.JSON(e.Value)},
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to seed config %s: %w", e.Key, err)
			}
		}

		return nil
	})
}
