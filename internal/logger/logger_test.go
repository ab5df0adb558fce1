package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bilinmiyor"))
}

func TestRequestLoggerAssignsID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	app := fiber.New()
	app.Use(RequestLogger(l))
	app.Get("/yok", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "bulunamadı")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/yok", nil))
	require.NoError(t, err)
	id := resp.Header.Get(RequestIDHeader)
	assert.NotEmpty(t, id)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, id, entry["request_id"])
	assert.EqualValues(t, 404, entry["status"])
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(New(Config{Output: &bytes.Buffer{}})))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}
