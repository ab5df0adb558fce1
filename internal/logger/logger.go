package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Config struct {
	Level     string // debug, info, warn, error
	Format    string // json, text
	Output    io.Writer
	Component string
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	l := slog.New(handler)
	if cfg.Component != "" {
		l = l.With("component", cfg.Component)
	}
	return l
}

const (
	RequestIDHeader = "X-Request-ID"
	LocalsRequestID = "request_id"
)

// RequestLogger: her isteğe request id verir ve tamamlanınca tek satır loglar.
// 5xx error, 4xx warn, diğerleri info seviyesinde yazılır.
func RequestLogger(l *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalsRequestID, requestID)
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		l.LogAttrs(c.UserContext(), level, "HTTP isteği tamamlandı",
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return err
	}
}

// FromCtx: istek id'siyle zenginleştirilmiş logger
func FromCtx(c *fiber.Ctx, l *slog.Logger) *slog.Logger {
	if id, ok := c.Locals(LocalsRequestID).(string); ok {
		return l.With("request_id", id)
	}
	return l
}
