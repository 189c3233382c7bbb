package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/localnerve/guau-api/internal/metrics"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventInput carries the fields an admin sets on an event. Nil pointers are
// left unchanged on update and take their defaults on create.
type EventInput struct {
	Name                 *string
	Description          *string
	EventDate            *time.Time
	Location             *string
	Kilometers           *float64
	MaxParticipants      *int
	ClearMaxParticipants bool
	RequiresConfirmation *bool
	IsActive             *bool
}

// EventSummary is an event with its current registrant count
type EventSummary struct {
	models.EventRoute
	ParticipantCount int64 `json:"participantCount"`
}

// ListEventsFilter narrows ListEvents
type ListEventsFilter struct {
	IncludeInactive bool
	UpcomingOnly    bool
}

func validateEventInput(in EventInput) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if in.Kilometers != nil && *in.Kilometers < 0 {
		return fmt.Errorf("%w: kilometers must not be negative", ErrInvalidInput)
	}
	if in.MaxParticipants != nil && *in.MaxParticipants < 1 {
		return fmt.Errorf("%w: maxParticipants must be at least 1", ErrInvalidInput)
	}
	return nil
}

// CreateEvent stores a new active event
func CreateEvent(ctx context.Context, db *gorm.DB, adminID string, in EventInput) (*models.EventRoute, error) {
	if in.Name == nil || in.EventDate == nil {
		return nil, fmt.Errorf("%w: name and eventDate are required", ErrInvalidInput)
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	event := models.EventRoute{
		Name:                 strings.TrimSpace(*in.Name),
		EventDate:            in.EventDate.UTC(),
		MaxParticipants:      in.MaxParticipants,
		RequiresConfirmation: true,
		IsActive:             true,
		CreatedBy:            adminID,
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Kilometers != nil {
		event.Kilometers = *in.Kilometers
	}
	if in.RequiresConfirmation != nil {
		event.RequiresConfirmation = *in.RequiresConfirmation
	}
	if in.IsActive != nil {
		event.IsActive = *in.IsActive
	}

	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// UpdateEvent applies the non-nil fields of in
func UpdateEvent(ctx context.Context, db *gorm.DB, eventID string, in EventInput) (*models.EventRoute, error) {
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.EventDate != nil {
		updates["event_date"] = in.EventDate.UTC()
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.Kilometers != nil {
		updates["kilometers"] = *in.Kilometers
	}
	if in.MaxParticipants != nil {
		updates["max_participants"] = *in.MaxParticipants
	} else if in.ClearMaxParticipants {
		updates["max_participants"] = nil
	}
	if in.RequiresConfirmation != nil {
		updates["requires_confirmation"] = *in.RequiresConfirmation
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	db = db.WithContext(ctx)

	var event models.EventRoute
	if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if len(updates) == 0 {
		return &event, nil
	}

	if err := db.Model(&event).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to reload event: %w", err)
	}
	return &event, nil
}

// DeactivateEvent hides an event from listings and closes registration.
// Registrations and codes are kept.
func DeactivateEvent(ctx context.Context, db *gorm.DB, eventID string) error {
	db = db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.EventRoute{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if count == 0 {
		return ErrEventNotFound
	}

	if err := db.Model(&models.EventRoute{}).Where("id = ?", eventID).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate event: %w", err)
	}
	return nil
}

type participantCount struct {
	EventRouteID string
	Count        int64
}

func attachCounts(ctx context.Context, db *gorm.DB, events []models.EventRoute) ([]EventSummary, error) {
	out := make([]EventSummary, len(events))
	if len(events) == 0 {
		return out, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
		out[i] = EventSummary{EventRoute: e}
	}

	var counts []participantCount
	err := db.WithContext(ctx).Model(&models.EventParticipant{}).
		Select("event_route_id, COUNT(*) AS count").
		Where("event_route_id IN ?", ids).
		Group("event_route_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	byEvent := make(map[string]int64, len(counts))
	for _, c := range counts {
		byEvent[c.EventRouteID] = c.Count
	}
	for i := range out {
		out[i].ParticipantCount = byEvent[out[i].ID]
	}
	return out, nil
}

// ListEvents returns events ordered by date with registrant counts
func ListEvents(ctx context.Context, db *gorm.DB, filter ListEventsFilter) ([]EventSummary, error) {
	q := db.WithContext(ctx).Model(&models.EventRoute{})
	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if filter.UpcomingOnly {
		q = q.Where("event_date > ?", nowFunc())
	}

	var events []models.EventRoute
	if err := q.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return attachCounts(ctx, db, events)
}

// GetEvent returns one event with its registrant count. Inactive events are
// only visible when includeInactive is set.
func GetEvent(ctx context.Context, db *gorm.DB, eventID string, includeInactive bool) (*EventSummary, error) {
	q := db.WithContext(ctx).Where("id = ?", eventID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var event models.EventRoute
	if err := q.First(&event).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	summaries, err := attachCounts(ctx, db, []models.EventRoute{event})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// RegisterForEvent registers the user and assigns a confirmation code.
//
// Checks run in order and stop at the first failure: the event exists and is
// active, its date is in the future, the user is not registered yet, and the
// event has room. The event row is locked for the duration so capacity checks
// for the same event are serialized. The (user, event) unique index backs the
// duplicate check.
func RegisterForEvent(ctx context.Context, db *gorm.DB, userID, eventID string) (*models.EventParticipant, *models.EventRoute, error) {
	var event models.EventRoute
	var participant models.EventParticipant

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if supportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		} else if err := claimRows(tx, &models.EventRoute{}, "is_active", "id = ?", eventID).Error; err != nil {
			return fmt.Errorf("failed to lock event: %w", err)
		}
		if err := q.Where("id = ? AND is_active = ?", eventID, true).First(&event).Error; err != nil {
			if isNotFound(err) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		now := nowFunc()
		if !event.EventDate.After(now) {
			return ErrEventPassed
		}

		var existing int64
		err := tx.Model(&models.EventParticipant{}).
			Where("user_id = ? AND event_route_id = ?", userID, event.ID).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check registration: %w", err)
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		if event.MaxParticipants != nil {
			var registered int64
			if err := tx.Model(&models.EventParticipant{}).Where("event_route_id = ?", event.ID).Count(&registered).Error; err != nil {
				return fmt.Errorf("failed to count participants: %w", err)
			}
			if registered >= int64(*event.MaxParticipants) {
				return ErrEventFull
			}
		}

		code, err := uniqueCode(ctx, tx, &models.EventParticipant{}, "confirmation_code", generateConfirmationCode)
		if err != nil {
			return err
		}

		participant = models.EventParticipant{
			UserID:           userID,
			EventRouteID:     event.ID,
			ConfirmationCode: code,
			RegisteredAt:     now,
		}
		if err := tx.Create(&participant).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("failed to register: %w", err)
		}
		return nil
	})
	recordRegistration(err)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "event registration", "userId", userID, "eventId", event.ID)
	return &participant, &event, nil
}

func recordRegistration(err error) {
	switch {
	case err == nil:
		metrics.EventRegistrations.WithLabelValues(metrics.ResultOK).Inc()
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrEventPassed),
		errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrEventFull):
		metrics.EventRegistrations.WithLabelValues(metrics.ResultRejected).Inc()
	default:
		metrics.EventRegistrations.WithLabelValues(metrics.ResultError).Inc()
	}
}

// CancelRegistration removes the user's unconfirmed registration
func CancelRegistration(ctx context.Context, db *gorm.DB, userID, eventID string) error {
	db = db.WithContext(ctx)

	var participant models.EventParticipant
	err := db.Where("user_id = ? AND event_route_id = ?", userID, eventID).First(&participant).Error
	if err != nil {
		if isNotFound(err) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to load registration: %w", err)
	}
	if participant.AttendanceConfirmed {
		return ErrAlreadyConfirmed
	}

	res := db.Where("id = ? AND attendance_confirmed = ?", participant.ID, false).Delete(&models.EventParticipant{})
	if res.Error != nil {
		return fmt.Errorf("failed to cancel registration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyConfirmed
	}
	return nil
}

// ListParticipants returns the event's registrations with their users
func ListParticipants(ctx context.Context, db *gorm.DB, eventID string) ([]models.EventParticipant, error) {
	var out []models.EventParticipant
	err := db.WithContext(ctx).
		Preload("User").
		Where("event_route_id = ?", eventID).
		Order("registered_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return out, nil
}

// ListUserRegistrations returns the user's registrations with their events
func ListUserRegistrations(ctx context.Context, db *gorm.DB, userID string) ([]models.EventParticipant, error) {
	var out []models.EventParticipant
	err := db.WithContext(ctx).
		Preload("EventRoute").
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return out, nil
}
