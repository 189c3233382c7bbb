package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/localnerve/guau-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "rai")
	other := createUser(t, db, "sol")

	first, err := Notify(ctx, db, user.ID, models.NotificationEvent, "Hola", "Primer aviso", map[string]any{"eventRouteId": "e1"})
	require.NoError(t, err)
	_, err = Notify(ctx, db, user.ID, models.NotificationSystem, "Hola", "Segundo aviso", nil)
	require.NoError(t, err)
	_, err = Notify(ctx, db, other.ID, models.NotificationSystem, "Hola", "Ajeno", nil)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(first.Data.JSON, &payload))
	assert.Equal(t, "e1", payload["eventRouteId"])

	list, err := ListNotifications(ctx, db, user.ID, false, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// other users' ids are ignored
	n, err := MarkNotificationsRead(ctx, db, user.ID, []string{first.ID, "foreign"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err := ListNotifications(ctx, db, user.ID, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Segundo aviso", unread[0].Message)

	n, err = MarkNotificationsRead(ctx, db, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, int64(1), countRows(t, db, &models.Notification{}, "user_id = ? AND is_read = ?", other.ID, false))
}

func TestBroadcast(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := createUser(t, db, "tom")
	createUser(t, db, "uma")

	sent, err := Broadcast(ctx, db, nil, "Aviso", "Ruta cancelada por lluvia")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = Broadcast(ctx, db, []string{a.ID, "ghost"}, "Aviso", "Solo para ti")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = Broadcast(ctx, db, []string{"ghost"}, "Aviso", "Nadie")
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	assert.Equal(t, int64(2), countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", a.ID, models.NotificationSystem))
}
