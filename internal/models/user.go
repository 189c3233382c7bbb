package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a community member. PasswordHash is only set for locally managed accounts.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:255" json:"name"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Dog belongs to a user. Photos are referenced by URL only.
type Dog struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"size:36;not null;index" json:"userId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Breed     string     `gorm:"size:255" json:"breed"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	PhotoURL  string     `gorm:"size:1024" json:"photoUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Walk is a self-reported walk that credits kilometers
type Walk struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string    `gorm:"size:36;not null;index" json:"userId"`
	DogID           *string   `gorm:"size:36;index" json:"dogId,omitempty"`
	Kilometers      float64   `gorm:"not null" json:"kilometers"`
	DurationMinutes int       `json:"durationMinutes"`
	WalkedAt        time.Time `gorm:"not null;index" json:"walkedAt"`
	Notes           string    `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error { ensureID(&u.ID); return nil }
func (d *Dog) BeforeCreate(*gorm.DB) error  { ensureID(&d.ID); return nil }
func (w *Walk) BeforeCreate(*gorm.DB) error { ensureID(&w.ID); return nil }

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Dog
func (Dog) TableName() string {
	return "dogs"
}

// TableName overrides the table name for Walk
func (Walk) TableName() string {
	return "walks"
}
