package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/guau-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: kilometers must be greater than 0", services.ErrInvalidInput), 400, "invalid input: kilometers must be greater than 0"},
		{services.ErrEntryCodeExpired, 400, services.ErrEntryCodeExpired.Error()},
		{fmt.Errorf("wrapped: %w", services.ErrEventNotFound), 404, services.ErrEventNotFound.Error()},
		{services.ErrEmailTaken, 409, services.ErrEmailTaken.Error()},
		{services.ErrInvalidCredentials, 401, services.ErrInvalidCredentials.Error()},
		{fmt.Errorf("%w after 10 attempts", services.ErrCodeGeneration), 500, "Internal server error"},
		{errors.New("sql: connection refused"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return mapServiceError(c, tt.err, "test") })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body["error"])
			assert.Equal(t, false, body["ok"])
		})
	}
}

func TestParseBodyValidation(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/", func(c *fiber.Ctx) error {
		var body CreateCodesRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	send := func(payload string) (int, map[string]any) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode, body
	}

	status, body := send(`{"count": 0}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "count is required", body["error"])

	status, body = send(`{"count": 900}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "count failed max=500")

	status, _ = send(`{"count": "x"`)
	assert.Equal(t, 400, status)

	status, _ = send(`{"count": 3, "kilometers": "2,5"}`)
	assert.Equal(t, 204, status)
}

func TestParseQueryList(t *testing.T) {
	app := fiber.New()
	var got []string
	app.Get("/", func(c *fiber.Ctx) error {
		got = parseQueryList(c, "ids")
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?ids=a,b&ids=c&ids=a&other=z&ids=", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
