package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is an in-app message for a single user
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"size:1024" json:"message"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	Data      JSON      `json:"data,omitempty"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// AppConfig is a keyed JSON setting. Public keys are readable without a session.
type AppConfig struct {
	Key       string    `gorm:"column:config_key;primaryKey;size:128" json:"key"`
	Value     JSON      `json:"value"`
	Public    bool      `gorm:"not null;default:false" json:"public"`
	UpdatedBy string    `gorm:"size:36" json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error { ensureID(&n.ID); return nil }

// TableName overrides the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// TableName overrides the table name for AppConfig
func (AppConfig) TableName() string {
	return "app_config"
}
