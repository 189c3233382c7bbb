package services

import (
	"context"
	"fmt"

	"github.com/localnerve/guau-api/internal/models"
	"gorm.io/gorm"
)

const maxNotificationPage = 100

// Notify stores a notification for one user. data is marshaled into the JSON column.
func Notify(ctx context.Context, db *gorm.DB, userID, notificationType, title, message string, data any) (*models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if data != nil {
		payload, err := models.NewJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
		n.Data = payload
	}

	if err := db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// ListNotifications returns the newest notifications first
func ListNotifications(ctx context.Context, db *gorm.DB, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > maxNotificationPage {
		limit = maxNotificationPage
	}

	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var out []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return out, nil
}

// MarkNotificationsRead marks the given notifications, or all of them when ids
// is empty, as read. Only the owner's rows are touched.
func MarkNotificationsRead(ctx context.Context, db *gorm.DB, userID string, ids []string) (int64, error) {
	q := db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	res := q.Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Broadcast sends a system notification to userIDs, or to every user when empty
func Broadcast(ctx context.Context, db *gorm.DB, userIDs []string, title, message string) (int, error) {
	db = db.WithContext(ctx)

	if len(userIDs) == 0 {
		if err := db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
			return 0, fmt.Errorf("failed to list users: %w", err)
		}
	} else {
		var known []string
		if err := db.Model(&models.User{}).Where("id IN ?", userIDs).Pluck("id", &known).Error; err != nil {
			return 0, fmt.Errorf("failed to resolve users: %w", err)
		}
		userIDs = known
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	rows := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.Notification{
			UserID:  id,
			Type:    models.NotificationSystem,
			Title:   title,
			Message: message,
		})
	}
	if err := db.CreateInBatches(&rows, 200).Error; err != nil {
		return 0, fmt.Errorf("failed to broadcast notification: %w", err)
	}
	return len(rows), nil
}
