package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/localnerve/guau-api/internal/metrics"
	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// AttendanceSelector picks a participant by id or by confirmation code
type AttendanceSelector struct {
	ParticipantID    string
	ConfirmationCode string
}

// AttendanceHook runs after a confirmation is committed. Errors are logged and
// never undo the confirmation.
type AttendanceHook func(ctx context.Context, db *gorm.DB, participant *models.EventParticipant) error

// ConfirmAttendance marks a registration as attended. Confirmation is one-way:
// a second call fails with ErrAlreadyConfirmed, also under concurrency, since
// the update only matches unconfirmed rows.
func ConfirmAttendance(ctx context.Context, db *gorm.DB, adminID string, sel AttendanceSelector, hooks ...AttendanceHook) (*models.EventParticipant, error) {
	db = db.WithContext(ctx)

	q := db.Preload("User").Preload("EventRoute")
	switch {
	case sel.ParticipantID != "":
		q = q.Where("id = ?", sel.ParticipantID)
	case sel.ConfirmationCode != "":
		q = q.Clauses(hints.CommentBefore("select", "attendance_by_code")).
			Where("confirmation_code = ?", NormalizeCode(sel.ConfirmationCode))
	default:
		return nil, fmt.Errorf("%w: participantId or confirmationCode is required", ErrInvalidInput)
	}

	var participant models.EventParticipant
	if err := q.First(&participant).Error; err != nil {
		recordConfirmation(err)
		if isNotFound(err) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant.AttendanceConfirmed {
		recordConfirmation(ErrAlreadyConfirmed)
		return nil, ErrAlreadyConfirmed
	}

	now := nowFunc()
	res := db.Model(&models.EventParticipant{}).
		Where("id = ? AND attendance_confirmed = ?", participant.ID, false).
		Updates(map[string]any{
			"attendance_confirmed": true,
			"confirmed_at":         now,
			"confirmed_by":         adminID,
		})
	if res.Error != nil {
		recordConfirmation(res.Error)
		return nil, fmt.Errorf("failed to confirm attendance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		recordConfirmation(ErrAlreadyConfirmed)
		return nil, ErrAlreadyConfirmed
	}
	recordConfirmation(nil)

	participant.AttendanceConfirmed = true
	participant.ConfirmedAt = &now
	participant.ConfirmedBy = &adminID

	slog.InfoContext(ctx, "attendance confirmed", "participantId", participant.ID, "userId", participant.UserID, "by", adminID)

	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, db, &participant); err != nil {
			slog.WarnContext(ctx, "attendance hook failed", "participantId", participant.ID, "error", err)
		}
	}

	return &participant, nil
}

func recordConfirmation(err error) {
	switch {
	case err == nil:
		metrics.AttendanceConfirmations.WithLabelValues(metrics.ResultOK).Inc()
	case errors.Is(err, ErrAlreadyConfirmed), isNotFound(err):
		metrics.AttendanceConfirmations.WithLabelValues(metrics.ResultRejected).Inc()
	default:
		metrics.AttendanceConfirmations.WithLabelValues(metrics.ResultError).Inc()
	}
}

// NotifyAttendanceHook tells the participant their attendance was recorded
func NotifyAttendanceHook(ctx context.Context, db *gorm.DB, p *models.EventParticipant) error {
	eventName := ""
	if p.EventRoute != nil {
		eventName = p.EventRoute.Name
	}
	_, err := Notify(ctx, db, p.UserID, models.NotificationEvent,
		"Attendance confirmed",
		fmt.Sprintf("Thanks for walking with us at %s!", eventName),
		map[string]any{"eventRouteId": p.EventRouteID, "participantId": p.ID})
	return err
}

// CreditAttendanceHook credits the event's kilometers and one completed event,
// then evaluates kilometers and events achievements
func CreditAttendanceHook(ctx context.Context, db *gorm.DB, p *models.EventParticipant) error {
	if p.EventRoute == nil {
		return fmt.Errorf("participant %s has no event loaded", p.ID)
	}

	progress, err := CreditProgress(ctx, db, p.UserID, p.EventRoute.Kilometers, 1)
	if err != nil {
		return err
	}
	metrics.KilometersCredited.WithLabelValues("attendance").Add(p.EventRoute.Kilometers)

	if _, err := EvaluateUnlocks(ctx, db, p.UserID, progress.TotalKilometers); err != nil {
		return err
	}
	if _, err := EvaluateEventUnlocks(ctx, db, p.UserID, progress.EventsCompleted); err != nil {
		return err
	}
	return nil
}
