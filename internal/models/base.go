package models

import (
	"github.com/google/uuid"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Achievement types
const (
	AchievementKilometers = "kilometers"
	AchievementEvents     = "events"
	AchievementSpecial    = "special"
)

// Notification types
const (
	NotificationAchievement = "achievement"
	NotificationMilestone   = "milestone"
	NotificationEvent       = "event"
	NotificationSystem      = "system"
)

// NewID returns a new random primary key
func NewID() string {
	return uuid.NewString()
}

// ensureID assigns a key when the caller left it empty
func ensureID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}
