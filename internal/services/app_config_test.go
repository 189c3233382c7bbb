package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/localnerve/guau-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSettings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	cfg, err := PublicConfig(ctx, db)
	require.NoError(t, err)
	assert.JSONEq(t, "10", string(cfg["leaderboard_size"]))

	_, err = SetConfig(ctx, db, "admin", "leaderboard_size", json.RawMessage(`25`), true)
	require.NoError(t, err)
	_, err = SetConfig(ctx, db, "admin", "internal_flag", json.RawMessage(`{"on":true}`), false)
	require.NoError(t, err)

	cfg, err = PublicConfig(ctx, db)
	require.NoError(t, err)
	assert.JSONEq(t, "25", string(cfg["leaderboard_size"]))
	assert.NotContains(t, cfg, "internal_flag")

	_, err = SetConfig(ctx, db, "admin", " ", json.RawMessage(`1`), true)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = SetConfig(ctx, db, "admin", "broken", json.RawMessage(`{nope`), true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		km   float64
	}{{"vic", 12}, {"wal", 80}, {"xoan", 45}} {
		u := createUser(t, db, tc.name)
		setProgress(t, db, u.ID, tc.km)
	}

	board, err := Leaderboard(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "wal", board[0].Name)
	assert.Equal(t, 80.0, board[0].TotalKilometers)
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, "xoan", board[1].Name)

	full, err := Leaderboard(ctx, db, 0)
	require.NoError(t, err)
	assert.Len(t, full, 3)
}

func TestHealthCheck(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := HealthCheck(ctx, &config.Config{DBType: "sqlite", DBDatabase: "memory", AuthProvider: "jwt"}, db)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "ok", res.Database)
	assert.Empty(t, res.Authorizer)

	res = HealthCheck(ctx, &config.Config{
		DBType: "sqlite", AuthProvider: "authorizer", AuthzURL: "http://127.0.0.1:1",
	}, db)
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "unreachable", res.Authorizer)
	assert.Contains(t, res.ErrorMessage, "Authorizer ping failed")
}
