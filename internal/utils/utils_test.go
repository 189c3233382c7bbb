package utils

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ErrorResponse(c, "Code expired", fiber.StatusBadRequest, "codes.expired")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got ErrorResponseStruct
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Code expired", got.Error)
	assert.Equal(t, "codes.expired", got.Type)
	assert.Equal(t, "/boom?x=1", got.URL)
	assert.False(t, got.Ok)
}

func TestMessageResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return MessageResponse(c, "done", fiber.Map{"count": 2})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "done", got["message"])
	assert.Equal(t, float64(2), got["count"])
}

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx := context.Background()
	require.NoError(t, PingService(ctx, "http://"+ln.Addr().String(), time.Second))

	require.Error(t, PingService(ctx, "://bad", time.Second))
	require.Error(t, PingService(ctx, "http://", time.Second))
}
