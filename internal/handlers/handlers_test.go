// handlers_test.go
//
// A gamified dog-walking community service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of guau-api.
// guau-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// guau-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with guau-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/database"
	"github.com/localnerve/guau-api/internal/handlers"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "handler-test-secret"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestServer(t *testing.T, creditAttendance bool) *testServer {
	t.Helper()

	cfg := &config.Config{
		DBType:                    "sqlite",
		DBDatabase:                "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AuthProvider:              "jwt",
		JWTSecret:                 secret,
		JWTTTL:                    time.Hour,
		AttendanceCreditsProgress: creditAttendance,
	}
	db, err := database.Connect(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedCatalog(context.Background(), db))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, handlers.Deps{
		DB:              db,
		Config:          cfg,
		Verifier:        services.NewSessionVerifier(cfg, db),
		AttendanceHooks: handlers.AttendanceHooks(cfg),
	})
	app.Use(handlers.NotFound)

	return &testServer{app: app, db: db, cfg: cfg}
}

// account creates a user with the given role and returns a bearer token
func (s *testServer) account(t *testing.T, name, role string) (*models.User, string) {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Name: name, Role: role}
	require.NoError(t, s.db.Create(u).Error)
	token, _, err := services.IssueToken(u, secret, time.Hour)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, path, token, body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func (s *testServer) doRaw(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (s *testServer) event(t *testing.T, name string, when time.Time, km float64, max *int) *models.EventRoute {
	t.Helper()
	e := &models.EventRoute{Name: name, EventDate: when, Kilometers: km, MaxParticipants: max, IsActive: true, RequiresConfirmation: true}
	require.NoError(t, s.db.Create(e).Error)
	return e
}

func TestSignupLoginMe(t *testing.T) {
	s := newTestServer(t, false)

	status, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email": "nuria@example.com", "name": "Nuria", "password": "perrito123",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.NotEmpty(t, body["token"])

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email": "nuria@example.com", "password": "perrito123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["ok"])

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{"email": "bad", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	status, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nuria@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nuria@example.com", "password": "perrito123"})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, body = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "nuria@example.com", body["email"])
	assert.Nil(t, body["passwordHash"])

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRedeemEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	_, token := s.account(t, "olivia", models.RoleUser)
	ev := s.event(t, "Ruta del Agua", time.Now().Add(-time.Hour), 7.5, nil)
	require.NoError(t, s.db.Create(&models.EntryCode{Code: "GUAU-WATER001", EventRouteID: ev.ID, Kilometers: 7.5}).Error)

	status, body := s.do(t, http.MethodPost, "/api/codes/redeem", token, map[string]any{"code": "guau-water001"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 7.5, body["kilometers"])
	assert.Equal(t, "Ruta del Agua", body["eventName"])
	assert.Equal(t, 7.5, body["totalKilometers"])

	status, body = s.do(t, http.MethodPost, "/api/codes/redeem", token, map[string]any{"code": "GUAU-WATER001"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, services.ErrEntryCodeUsed.Error(), body["error"])

	status, _ = s.do(t, http.MethodPost, "/api/codes/redeem", token, map[string]any{"code": "GUAU-UNKNOWN0"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/codes/redeem", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/codes/redeem", "", map[string]any{"code": "GUAU-WATER001"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterAndConfirmByCode(t *testing.T) {
	s := newTestServer(t, true)
	user, token := s.account(t, "pablo", models.RoleUser)
	_, adminToken := s.account(t, "boss", models.RoleAdmin)
	ev := s.event(t, "Sierra Norte", time.Now().Add(24*time.Hour), 12, intPtr(1))

	status, body := s.do(t, http.MethodPost, "/api/events/register", token, map[string]any{"eventRouteId": ev.ID})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Sierra Norte", body["eventName"])
	code := body["confirmationCode"].(string)
	assert.Len(t, code, 6)

	status, _ = s.do(t, http.MethodPost, "/api/events/register", token, map[string]any{"eventRouteId": ev.ID})
	assert.Equal(t, http.StatusBadRequest, status)

	_, otherToken := s.account(t, "quima", models.RoleUser)
	status, body = s.do(t, http.MethodPost, "/api/events/register", otherToken, map[string]any{"eventRouteId": ev.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, services.ErrEventFull.Error(), body["error"])

	status, _ = s.do(t, http.MethodPost, "/api/events/register", token, map[string]any{"eventRouteId": "missing"})
	assert.Equal(t, http.StatusNotFound, status)

	// users cannot confirm
	status, _ = s.do(t, http.MethodPost, "/api/admin/attendance/confirm-code", token, map[string]any{"confirmationCode": code})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.do(t, http.MethodPost, "/api/admin/attendance/confirm-code", adminToken, map[string]any{"confirmationCode": code})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "pablo", body["userName"])
	assert.Equal(t, "Sierra Norte", body["eventName"])

	status, _ = s.do(t, http.MethodPost, "/api/admin/attendance/confirm-code", adminToken, map[string]any{"confirmationCode": code})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/admin/attendance/confirm", adminToken, map[string]any{"participantId": "missing"})
	assert.Equal(t, http.StatusNotFound, status)

	// credit hook enabled
	progress, err := services.GetProgress(context.Background(), s.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, progress.TotalKilometers)
	assert.Equal(t, 1, progress.EventsCompleted)
}

func TestConfirmByIDWithoutCreditHook(t *testing.T) {
	s := newTestServer(t, false)
	user, token := s.account(t, "rocio", models.RoleUser)
	_, adminToken := s.account(t, "jefa", models.RoleAdmin)
	ev := s.event(t, "Vía Verde", time.Now().Add(24*time.Hour), 9, nil)

	status, _ := s.do(t, http.MethodPost, "/api/events/register", token, map[string]any{"eventRouteId": ev.ID})
	require.Equal(t, http.StatusOK, status)

	var p models.EventParticipant
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&p).Error)

	status, body := s.do(t, http.MethodPost, "/api/admin/attendance/confirm", adminToken, map[string]any{"participantId": p.ID})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Attendance confirmed", body["message"])
	participant := body["participant"].(map[string]any)
	assert.Equal(t, true, participant["attendanceConfirmed"])

	status, body = s.do(t, http.MethodGet, "/api/me/progress", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, body["totalKilometers"])
	assert.Equal(t, 1.0, body["currentLevel"])
}

func TestWelcomeEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	_, token := s.account(t, "sergio", models.RoleUser)

	status, body := s.do(t, http.MethodPost, "/api/achievements/welcome", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["achievement"])

	status, body = s.do(t, http.MethodPost, "/api/achievements/welcome", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Achievement already unlocked", body["message"])

	status, raw := s.doRaw(t, http.MethodGet, "/api/me/achievements", token, nil)
	require.Equal(t, http.StatusOK, status)
	var grants []map[string]any
	require.NoError(t, json.Unmarshal(raw, &grants))
	assert.Len(t, grants, 1)
}

func TestWalksDogsAndNotifications(t *testing.T) {
	s := newTestServer(t, false)
	_, token := s.account(t, "tania", models.RoleUser)

	status, body := s.do(t, http.MethodPost, "/api/me/dogs", token, map[string]any{"name": "Canela", "breed": "Mestizo"})
	require.Equal(t, http.StatusCreated, status, body)
	dogID := body["id"].(string)

	status, body = s.do(t, http.MethodPost, "/api/me/walks", token, map[string]any{"dogId": dogID, "kilometers": "10,5"})
	require.Equal(t, http.StatusCreated, status, body)
	progress := body["progress"].(map[string]any)
	assert.Equal(t, 10.5, progress["totalKilometers"])
	assert.Len(t, body["unlocked"], 1)

	status, _ = s.do(t, http.MethodPost, "/api/me/walks", token, map[string]any{"kilometers": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := s.doRaw(t, http.MethodGet, "/api/me/notifications?unread=true", token, nil)
	require.Equal(t, http.StatusOK, status)
	var notes []map[string]any
	require.NoError(t, json.Unmarshal(raw, &notes))
	assert.NotEmpty(t, notes)

	status, body = s.do(t, http.MethodPatch, "/api/me/notifications/read", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(len(notes)), body["updated"])

	status, _ = s.do(t, http.MethodDelete, "/api/me/dogs/"+dogID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodDelete, "/api/me/dogs/"+dogID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminEventsAndCodes(t *testing.T) {
	s := newTestServer(t, false)
	_, adminToken := s.account(t, "admin", models.RoleAdmin)

	status, body := s.do(t, http.MethodPost, "/api/admin/events", adminToken, map[string]any{
		"name": "Parque Juan Carlos I", "date": time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"kilometers": 6, "maxParticipants": 40,
	})
	require.Equal(t, http.StatusCreated, status, body)
	eventID := body["id"].(string)

	status, _ = s.do(t, http.MethodPost, "/api/admin/events", adminToken, map[string]any{"kilometers": 6})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodPut, "/api/admin/events/"+eventID, adminToken, map[string]any{"location": "Madrid"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Madrid", body["location"])

	status, raw := s.doRaw(t, http.MethodPost, "/api/admin/events/"+eventID+"/codes", adminToken, map[string]any{"count": 3})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var codes []models.EntryCode
	require.NoError(t, json.Unmarshal(raw, &codes))
	require.Len(t, codes, 3)

	status, _ = s.do(t, http.MethodPost, "/api/admin/events/"+eventID+"/codes", adminToken, map[string]any{"count": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodDelete, "/api/admin/codes/"+codes[0].ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodDelete, "/api/admin/codes/"+codes[0].ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = s.doRaw(t, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, status)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(raw, &events))
	assert.Len(t, events, 1)

	status, _ = s.do(t, http.MethodDelete, "/api/admin/events/"+eventID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/events/"+eventID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminUsersConfigBroadcast(t *testing.T) {
	s := newTestServer(t, false)
	_, adminToken := s.account(t, "root", models.RoleAdmin)
	member, memberToken := s.account(t, "ursula", models.RoleUser)

	status, body := s.do(t, http.MethodGet, "/api/admin/users?limit=1", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, body["total"])

	status, body = s.do(t, http.MethodPatch, "/api/admin/users/"+member.ID+"/role", adminToken, map[string]any{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, models.RoleAdmin, body["role"])

	// the promoted member's existing token now passes admin routes
	status, _ = s.do(t, http.MethodGet, "/api/admin/users", memberToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPut, "/api/admin/config/leaderboard_size", adminToken, map[string]any{"value": 3, "public": true})
	require.Equal(t, http.StatusOK, status)
	status, body = s.do(t, http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3.0, body["leaderboard_size"])

	status, body = s.do(t, http.MethodPost, "/api/admin/notifications", adminToken, map[string]any{
		"userIds": member.ID, "title": "Aviso", "message": "Mañana llueve",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["sent"])

	status, _ = s.do(t, http.MethodPost, "/api/admin/notifications", adminToken, map[string]any{"title": "Sin mensaje"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLeaderboardEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	for i, name := range []string{"valeria", "walter", "ximena"} {
		u, _ := s.account(t, name, models.RoleUser)
		_, err := services.CreditProgress(ctx, s.db, u.ID, float64(10*(i+1)), 0)
		require.NoError(t, err)
	}

	status, raw := s.doRaw(t, http.MethodGet, "/api/leaderboard?limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	var board []services.LeaderboardEntry
	require.NoError(t, json.Unmarshal(raw, &board))
	require.Len(t, board, 2)
	assert.Equal(t, "ximena", board[0].Name)
	assert.Equal(t, 1, board[0].Rank)
}

func TestPublicConfigEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	status, body := s.do(t, http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 10.0, body["leaderboard_size"])
	assert.Equal(t, "Welcome to the pack!", body["welcome_message"])
	assert.Equal(t, "hola@guau.club", body["support_email"])
}

func TestLeaderboardUsesConfiguredSize(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	_, adminToken := s.account(t, "root", models.RoleAdmin)
	for i, name := range []string{"yago", "zoe", "amparo"} {
		u, _ := s.account(t, name, models.RoleUser)
		_, err := services.CreditProgress(ctx, s.db, u.ID, float64(5*(i+1)), 0)
		require.NoError(t, err)
	}

	status, raw := s.doRaw(t, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, status)
	var board []services.LeaderboardEntry
	require.NoError(t, json.Unmarshal(raw, &board))
	assert.Len(t, board, 3)

	status, _ = s.do(t, http.MethodPut, "/api/admin/config/leaderboard_size", adminToken, map[string]any{"value": 2, "public": true})
	require.Equal(t, http.StatusOK, status)

	status, raw = s.doRaw(t, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, status)
	board = nil
	require.NoError(t, json.Unmarshal(raw, &board))
	require.Len(t, board, 2)
	assert.Equal(t, "amparo", board[0].Name)
}

func TestLeaderboardFallsBackWhenConfigUnreadable(t *testing.T) {
	s := newTestServer(t, false)
	u, _ := s.account(t, "benito", models.RoleUser)
	_, err := services.CreditProgress(context.Background(), s.db, u.ID, 2, 0)
	require.NoError(t, err)
	require.NoError(t, s.db.Migrator().DropTable(&models.AppConfig{}))

	status, raw := s.doRaw(t, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, status)
	var board []services.LeaderboardEntry
	require.NoError(t, json.Unmarshal(raw, &board))
	assert.Len(t, board, 1)
}

func TestConcurrentRedeemEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	ev := s.event(t, "Carrera", time.Now(), 4, nil)
	require.NoError(t, s.db.Create(&models.EntryCode{Code: "GUAU-HTTPRACE", EventRouteID: ev.ID, Kilometers: 4}).Error)

	tokens := make([]string, 5)
	for i := range tokens {
		_, tokens[i] = s.account(t, "runner"+string(rune('a'+i)), models.RoleUser)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	counts := map[int]int{}
	for _, tok := range tokens {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/codes/redeem", bytes.NewReader([]byte(`{"code":"GUAU-HTTPRACE"}`)))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := s.app.Test(req, -1)
			if err != nil {
				t.Errorf("request failed: %v", err)
				return
			}
			resp.Body.Close()
			mu.Lock()
			counts[resp.StatusCode]++
			mu.Unlock()
		}(tok)
	}
	wg.Wait()

	assert.Equal(t, 1, counts[http.StatusOK])
	assert.Equal(t, len(tokens)-1, counts[http.StatusBadRequest])
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t, false)

	status, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = s.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["ok"])

	status, _ = s.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func intPtr(v int) *int { return &v }
