// data.go
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

package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"gorm.io/gorm"
)

// CreateTestEvent creates an active event one week out
func CreateTestEvent(t *testing.T, db *gorm.DB, adminID, name string, kilometers float64, maxParticipants *int) *models.EventRoute {
	t.Helper()
	date := time.Now().UTC().Add(7 * 24 * time.Hour)
	location := "Parque Central"
	event, err := services.CreateEvent(context.Background(), db, adminID, services.EventInput{
		Name:            &name,
		EventDate:       &date,
		Location:        &location,
		Kilometers:      &kilometers,
		MaxParticipants: maxParticipants,
	})
	if err != nil {
		t.Fatalf("Failed to create event %s: %v", name, err)
	}
	return event
}

// CreateTestEntryCodes generates count entry codes worth the event's kilometers
func CreateTestEntryCodes(t *testing.T, db *gorm.DB, adminID, eventID string, count int) []models.EntryCode {
	t.Helper()
	codes, err := services.CreateEntryCodes(context.Background(), db, adminID, eventID, services.EntryCodeBatch{
		Count: count,
	})
	if err != nil {
		t.Fatalf("Failed to create entry codes: %v", err)
	}
	return codes
}

// CleanupTestData removes all rows written by a test run, children first
func CleanupTestData(t *testing.T, db *gorm.DB) {
	t.Helper()
	tables := []any{
		&models.EntryCodeUsage{},
		&models.EntryCode{},
		&models.EventParticipant{},
		&models.EventRoute{},
		&models.UserAchievement{},
		&models.Notification{},
		&models.Walk{},
		&models.Dog{},
		&models.UserProgress{},
		&models.User{},
	}
	for _, model := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			t.Fatalf("Failed to clean up %T: %v", model, err)
		}
	}
}
