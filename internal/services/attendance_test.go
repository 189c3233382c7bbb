package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registered(t *testing.T, db *gorm.DB, name string, km float64) (*models.User, *models.EventParticipant) {
	t.Helper()
	user := createUser(t, db, name)
	event := createEvent(t, db, "Asistencia "+name, time.Now().Add(time.Hour), km, nil)
	p, _, err := RegisterForEvent(context.Background(), db, user.ID, event.ID)
	require.NoError(t, err)
	return user, p
}

func TestConfirmAttendanceByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin")
	_, p := registered(t, db, "elena", 5)

	confirmed, err := ConfirmAttendance(ctx, db, admin.ID, AttendanceSelector{ParticipantID: p.ID})
	require.NoError(t, err)
	assert.True(t, confirmed.AttendanceConfirmed)
	require.NotNil(t, confirmed.ConfirmedAt)
	require.NotNil(t, confirmed.ConfirmedBy)
	assert.Equal(t, admin.ID, *confirmed.ConfirmedBy)
	require.NotNil(t, confirmed.User)
	assert.Equal(t, "elena", confirmed.User.Name)

	var stored models.EventParticipant
	require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
	assert.True(t, stored.AttendanceConfirmed)

	_, err = ConfirmAttendance(ctx, db, admin.ID, AttendanceSelector{ParticipantID: p.ID})
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestConfirmAttendanceByCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, p := registered(t, db, "fran", 5)

	confirmed, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ConfirmationCode: " " + strings.ToLower(p.ConfirmationCode)})
	require.NoError(t, err)
	assert.Equal(t, p.ID, confirmed.ID)

	_, err = ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ConfirmationCode: p.ConfirmationCode})
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestConfirmAttendanceFailures(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ParticipantID: "missing"})
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ConfirmationCode: "ZZZZZZ"})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestConfirmAttendanceConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, p := registered(t, db, "gala", 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ParticipantID: p.ID})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrAlreadyConfirmed) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestConfirmAttendanceHooks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, p := registered(t, db, "hugo", 5)

	var seen []string
	failing := func(context.Context, *gorm.DB, *models.EventParticipant) error {
		seen = append(seen, "failing")
		return errors.New("hook broke")
	}
	recording := func(_ context.Context, _ *gorm.DB, got *models.EventParticipant) error {
		seen = append(seen, "recording")
		assert.True(t, got.AttendanceConfirmed)
		return nil
	}

	_, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ParticipantID: p.ID}, failing, nil, recording)
	require.NoError(t, err)
	assert.Equal(t, []string{"failing", "recording"}, seen)
}

func TestAttendanceWithoutCreditHookLeavesLedger(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user, p := registered(t, db, "ines", 12)

	_, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ParticipantID: p.ID}, NotifyAttendanceHook)
	require.NoError(t, err)

	assert.Equal(t, int64(0), countRows(t, db, &models.UserProgress{}, "user_id = ? AND total_kilometers > 0", user.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Notification{},
		"user_id = ? AND type = ?", user.ID, models.NotificationEvent))
}

func TestCreditAttendanceHook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user, p := registered(t, db, "jon", 12)

	_, err := ConfirmAttendance(ctx, db, "admin", AttendanceSelector{ParticipantID: p.ID}, CreditAttendanceHook)
	require.NoError(t, err)

	progress, err := GetProgress(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, progress.TotalKilometers)
	assert.Equal(t, 1, progress.EventsCompleted)

	granted, err := ListUserAchievements(ctx, db, user.ID)
	require.NoError(t, err)
	var codes []string
	for _, g := range granted {
		require.NotNil(t, g.Achievement)
		codes = append(codes, g.Achievement.Code)
	}
	assert.ElementsMatch(t, []string{"km-10", "events-1"}, codes)
}
