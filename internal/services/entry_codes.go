// entry_codes.go
//
// A gamified dog-walking community service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of guau-api.
// guau-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// guau-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with guau-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/localnerve/guau-api/internal/metrics"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxEntryCodesPerBatch = 500

// RedeemResult is what the user gets back from a successful redemption
type RedeemResult struct {
	Kilometers      float64              `json:"kilometers"`
	EventName       string               `json:"eventName"`
	TotalKilometers float64              `json:"totalKilometers"`
	Progress        *models.UserProgress `json:"-"`
	Unlocked        []models.Achievement `json:"-"`
}

// RedeemCode consumes a single-use entry code and credits its kilometers.
//
// Lookup, the used/expired checks, consumption and the ledger credit share one
// transaction. The unique index on entry_code_usages.entry_code_id is what
// guarantees a code is spent at most once; the is_used flag and the usage
// count are early exits. The milestone notification and the unlock evaluation
// run after commit and only log their failures.
func RedeemCode(ctx context.Context, db *gorm.DB, userID, rawCode string) (*RedeemResult, error) {
	code := NormalizeCode(rawCode)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	var entry models.EntryCode
	var progress *models.UserProgress

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Preload("EventRoute")
		if supportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		} else if err := claimRows(tx, &models.EntryCode{}, "is_used", "code = ?", code).Error; err != nil {
			return fmt.Errorf("failed to lock entry code: %w", err)
		}
		if err := q.Where("code = ?", code).First(&entry).Error; err != nil {
			if isNotFound(err) {
				return ErrEntryCodeNotFound
			}
			return fmt.Errorf("failed to load entry code: %w", err)
		}

		if entry.IsUsed {
			return ErrEntryCodeUsed
		}
		now := nowFunc()
		if entry.IsExpired(now) {
			return ErrEntryCodeExpired
		}

		var usages int64
		if err := tx.Model(&models.EntryCodeUsage{}).Where("entry_code_id = ?", entry.ID).Count(&usages).Error; err != nil {
			return fmt.Errorf("failed to check entry code usage: %w", err)
		}
		if usages > 0 {
			return ErrEntryCodeUsed
		}

		res := tx.Model(&models.EntryCode{}).
			Where("id = ? AND is_used = ?", entry.ID, false).
			Update("is_used", true)
		if res.Error != nil {
			return fmt.Errorf("failed to mark entry code used: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEntryCodeUsed
		}

		usage := models.EntryCodeUsage{
			EntryCodeID: entry.ID,
			UserID:      userID,
			UsedAt:      now,
		}
		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_code_id"}},
			DoNothing: true,
		}).Create(&usage)
		if res.Error != nil {
			if isDuplicateKey(res.Error) {
				return ErrEntryCodeUsed
			}
			return fmt.Errorf("failed to record entry code usage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEntryCodeUsed
		}

		var err error
		progress, err = CreditProgress(ctx, tx, userID, entry.Kilometers, 1)
		return err
	})
	if err != nil {
		recordRedemption(err)
		return nil, err
	}
	recordRedemption(nil)
	metrics.KilometersCredited.WithLabelValues("entry_code").Add(entry.Kilometers)

	eventName := ""
	if entry.EventRoute != nil {
		eventName = entry.EventRoute.Name
	}

	_, nerr := Notify(ctx, db, userID, models.NotificationMilestone,
		fmt.Sprintf("+%.1f km", entry.Kilometers),
		fmt.Sprintf("You earned %.1f km at %s. Total: %.1f km", entry.Kilometers, eventName, progress.TotalKilometers),
		map[string]any{"entryCodeId": entry.ID, "eventRouteId": entry.EventRouteID, "kilometers": entry.Kilometers})
	if nerr != nil {
		slog.WarnContext(ctx, "redemption notification failed", "userId", userID, "code", code, "error", nerr)
	}

	unlocked, uerr := EvaluateUnlocks(ctx, db, userID, progress.TotalKilometers)
	if uerr != nil {
		slog.WarnContext(ctx, "unlock evaluation after redemption failed", "userId", userID, "error", uerr)
	}

	slog.InfoContext(ctx, "entry code redeemed", "userId", userID, "code", code, "km", entry.Kilometers)

	return &RedeemResult{
		Kilometers:      entry.Kilometers,
		EventName:       eventName,
		TotalKilometers: progress.TotalKilometers,
		Progress:        progress,
		Unlocked:        unlocked,
	}, nil
}

func recordRedemption(err error) {
	switch {
	case err == nil:
		metrics.CodeRedemptions.WithLabelValues(metrics.ResultOK).Inc()
	case errors.Is(err, ErrEntryCodeNotFound), errors.Is(err, ErrEntryCodeUsed),
		errors.Is(err, ErrEntryCodeExpired), errors.Is(err, ErrInvalidInput):
		metrics.CodeRedemptions.WithLabelValues(metrics.ResultRejected).Inc()
	default:
		metrics.CodeRedemptions.WithLabelValues(metrics.ResultError).Inc()
	}
}

// EntryCodeBatch describes codes an admin generates for an event
type EntryCodeBatch struct {
	Count      int
	Kilometers *float64 // defaults to the event's kilometers
	ExpiresAt  *time.Time
}

// CreateEntryCodes generates Count unique GUAU-XXXXXXXX codes for the event
func CreateEntryCodes(ctx context.Context, db *gorm.DB, adminID, eventID string, batch EntryCodeBatch) ([]models.EntryCode, error) {
	if batch.Count < 1 || batch.Count > maxEntryCodesPerBatch {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, maxEntryCodesPerBatch)
	}
	if batch.Kilometers != nil && *batch.Kilometers < 0 {
		return nil, fmt.Errorf("%w: kilometers must not be negative", ErrInvalidInput)
	}

	var codes []models.EntryCode
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.EventRoute
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if isNotFound(err) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		km := event.Kilometers
		if batch.Kilometers != nil {
			km = *batch.Kilometers
		}

		codes = make([]models.EntryCode, 0, batch.Count)
		for i := 0; i < batch.Count; i++ {
			code, err := uniqueCode(ctx, tx, &models.EntryCode{}, "code", generateEntryCode)
			if err != nil {
				return err
			}
			entry := models.EntryCode{
				Code:         code,
				EventRouteID: event.ID,
				Kilometers:   km,
				ExpiresAt:    batch.ExpiresAt,
				CreatedBy:    adminID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create entry code: %w", err)
			}
			codes = append(codes, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// ListEntryCodes returns the event's codes, unused first
func ListEntryCodes(ctx context.Context, db *gorm.DB, eventID string) ([]models.EntryCode, error) {
	var out []models.EntryCode
	err := db.WithContext(ctx).
		Where("event_route_id = ?", eventID).
		Order("is_used ASC, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entry codes: %w", err)
	}
	return out, nil
}

// DeleteEntryCode removes an unused code. Spent codes stay as the audit trail.
func DeleteEntryCode(ctx context.Context, db *gorm.DB, codeID string) error {
	db = db.WithContext(ctx)

	res := db.Where("id = ? AND is_used = ?", codeID, false).Delete(&models.EntryCode{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete entry code: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.EntryCode{}).Where("id = ?", codeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to load entry code: %w", err)
	}
	if count > 0 {
		return ErrEntryCodeUsed
	}
	return ErrEntryCodeNotFound
}
