package models

import (
	"time"

	"gorm.io/gorm"
)

// EventRoute is a scheduled group walk
type EventRoute struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	Description          string    `gorm:"size:2048" json:"description,omitempty"`
	EventDate            time.Time `gorm:"not null;index" json:"eventDate"`
	Location             string    `gorm:"size:255" json:"location"`
	Kilometers           float64   `gorm:"not null;default:0" json:"kilometers"`
	MaxParticipants      *int      `json:"maxParticipants,omitempty"`
	RequiresConfirmation bool      `gorm:"not null" json:"requiresConfirmation"`
	IsActive             bool      `gorm:"not null;index" json:"isActive"`
	CreatedBy            string    `gorm:"size:36" json:"createdBy,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// EventParticipant is a registration. (user_id, event_route_id) and
// confirmation_code are unique.
type EventParticipant struct {
	ID                  string      `gorm:"primaryKey;size:36" json:"id"`
	UserID              string      `gorm:"size:36;not null;uniqueIndex:idx_participant_user_event" json:"userId"`
	EventRouteID        string      `gorm:"size:36;not null;uniqueIndex:idx_participant_user_event;index" json:"eventRouteId"`
	ConfirmationCode    string      `gorm:"size:16;not null;uniqueIndex" json:"confirmationCode"`
	AttendanceConfirmed bool        `gorm:"not null;default:false" json:"attendanceConfirmed"`
	ConfirmedAt         *time.Time  `json:"confirmedAt,omitempty"`
	ConfirmedBy         *string     `gorm:"size:36" json:"confirmedBy,omitempty"`
	RegisteredAt        time.Time   `gorm:"not null" json:"registeredAt"`
	User                *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventRoute          *EventRoute `gorm:"foreignKey:EventRouteID" json:"eventRoute,omitempty"`
}

// EntryCode is a single-use credential. Code is stored uppercase.
type EntryCode struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	Code         string      `gorm:"size:32;not null;uniqueIndex" json:"code"`
	EventRouteID string      `gorm:"size:36;not null;index" json:"eventRouteId"`
	Kilometers   float64     `gorm:"not null" json:"kilometers"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
	IsUsed       bool        `gorm:"not null;default:false" json:"isUsed"`
	CreatedBy    string      `gorm:"size:36" json:"createdBy,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	EventRoute   *EventRoute `gorm:"foreignKey:EventRouteID" json:"eventRoute,omitempty"`
}

// EntryCodeUsage is the authoritative consumption record. entry_code_id is unique.
type EntryCodeUsage struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	EntryCodeID string    `gorm:"size:36;not null;uniqueIndex" json:"entryCodeId"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"`
	UsedAt      time.Time `gorm:"not null" json:"usedAt"`
}

func (e *EventRoute) BeforeCreate(*gorm.DB) error       { ensureID(&e.ID); return nil }
func (p *EventParticipant) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }
func (c *EntryCode) BeforeCreate(*gorm.DB) error        { ensureID(&c.ID); return nil }
func (u *EntryCodeUsage) BeforeCreate(*gorm.DB) error   { ensureID(&u.ID); return nil }

// IsExpired reports whether the code expired before now
func (c *EntryCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// TableName overrides the table name for EventRoute
func (EventRoute) TableName() string {
	return "event_routes"
}

// TableName overrides the table name for EventParticipant
func (EventParticipant) TableName() string {
	return "event_participants"
}

// TableName overrides the table name for EntryCode
func (EntryCode) TableName() string {
	return "entry_codes"
}

// TableName overrides the table name for EntryCodeUsage
func (EntryCodeUsage) TableName() string {
	return "entry_code_usages"
}
