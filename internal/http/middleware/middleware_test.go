package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDLocalKey).(string))
	})

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generated when absent"},
		{name: "client id preserved", incoming: "test-id-123", wantSame: true},
		{name: "trace style id preserved", incoming: "req_01H:abc.def", wantSame: true},
		{name: "unsafe characters replaced", incoming: "abc\"><script>"},
		{name: "overlong id replaced", incoming: strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			got := resp.Header.Get(RequestIDHeader)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, got, string(body), "locals and header must agree")

			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err = uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.Equal(t, "request", logData["msg"])
	assert.Equal(t, "http", logData["logger"])
}

func TestLogger_StatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		handler    fiber.Handler
		wantStatus int
		wantLevel  zapcore.Level
	}{
		{
			name:       "fiber error",
			handler:    func(c *fiber.Ctx) error { return fiber.ErrNotFound },
			wantStatus: fiber.StatusNotFound,
			wantLevel:  zapcore.InfoLevel,
		},
		{
			name:       "plain error",
			handler:    func(c *fiber.Ctx) error { return errors.New("boom") },
			wantStatus: fiber.StatusInternalServerError,
			wantLevel:  zapcore.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			app := fiber.New()
			app.Use(Logger(zap.New(core)))
			app.Get("/fail", tt.handler)

			_, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			require.NoError(t, err)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, int64(tt.wantStatus), entries[0].ContextMap()["status"])
		})
	}
}
