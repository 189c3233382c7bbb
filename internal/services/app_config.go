package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PublicConfig returns the public settings keyed by name
func PublicConfig(ctx context.Context, db *gorm.DB) (map[string]json.RawMessage, error) {
	var rows []models.AppConfig
	if err := db.WithContext(ctx).Where("public = ?", true).Order("config_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	out := make(map[string]json.RawMessage, len(rows))
	for _, r := range rows {
		out[r.Key] = json.RawMessage(r.Value.JSON)
	}
	return out, nil
}

// SetConfig creates or replaces a setting. value must be valid JSON.
func SetConfig(ctx context.Context, db *gorm.DB, adminID, key string, value json.RawMessage, public bool) (*models.AppConfig, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	if !json.Valid(value) {
		return nil, fmt.Errorf("%w: value must be valid JSON", ErrInvalidInput)
	}

	row := models.AppConfig{
		Key:       key,
		Value:     models.JSON{JSON: datatypes.JSON(value)},
		Public:    public,
		UpdatedBy: adminID,
		UpdatedAt: nowFunc(),
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "public", "updated_by", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return &row, nil
}
