package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress holds a user's cumulative totals. One row per user.
type UserProgress struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	UserID           string    `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	TotalKilometers  float64   `gorm:"not null;default:0" json:"totalKilometers"`
	EventsCompleted  int       `gorm:"not null;default:0" json:"eventsCompleted"`
	ExperiencePoints int       `gorm:"not null;default:0" json:"experiencePoints"`
	CurrentLevel     int       `gorm:"not null;default:1" json:"currentLevel"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Achievement is a catalog entry. Threshold is kilometers or events depending on Type.
type Achievement struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Code        string    `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	Icon        string    `gorm:"size:64" json:"icon"`
	Type        string    `gorm:"size:32;not null;index" json:"type"`
	Threshold   float64   `gorm:"not null;default:0" json:"threshold"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserAchievement records a grant. (user_id, achievement_id) is unique.
type UserAchievement struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	UserID        string       `gorm:"size:36;not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID string       `gorm:"size:36;not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	UnlockedAt    time.Time    `gorm:"not null" json:"unlockedAt"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (p *UserProgress) BeforeCreate(*gorm.DB) error     { ensureID(&p.ID); return nil }
func (a *Achievement) BeforeCreate(*gorm.DB) error      { ensureID(&a.ID); return nil }
func (ua *UserAchievement) BeforeCreate(*gorm.DB) error { ensureID(&ua.ID); return nil }

// TableName overrides the table name for UserProgress
func (UserProgress) TableName() string {
	return "user_progress"
}

// TableName overrides the table name for Achievement
func (Achievement) TableName() string {
	return "achievements"
}

// TableName overrides the table name for UserAchievement
func (UserAchievement) TableName() string {
	return "user_achievements"
}
