package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/core/handler"
	"github.com/dmitrymomot/mailrelay/core/response"
	"github.com/dmitrymomot/mailrelay/core/router"
	"github.com/dmitrymomot/mailrelay/middleware"
)

// testLogHandler captures log entries for testing
type testLogHandler struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(map[string]any)
	entry["level"] = r.Level.String()
	entry["msg"] = r.Message

	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()
	return nil
}

func (h *testLogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *testLogHandler) WithGroup(string) slog.Handler { return h }

func (h *testLogHandler) all() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]map[string]any(nil), h.entries...)
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())
	r.Use(middleware.LoggingWithLogger[*router.Context](slog.New(logHandler)))
	r.Post("/send", func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]any{"success": true, "message": "Email sent"})
	})

	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"htmlBody":"secret"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	entries := logHandler.all()
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "HTTP request completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/send", entry["path"])
	assert.Equal(t, int64(200), entry["status_code"])
	assert.Equal(t, int64(w.Body.Len()), entry["bytes_out"])
	assert.NotNil(t, entry["duration"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), entry["request_id"])

	for _, v := range entry {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "secret", "bodies must not be logged")
		}
	}
}

func TestLoggingLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel string
		wantError bool
	}{
		{name: "success", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusUnprocessableEntity, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, err: errors.New("render"), wantLevel: "ERROR", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logHandler := &testLogHandler{}

			r := router.New[*router.Context]()
			r.Use(middleware.LoggingWithLogger[*router.Context](slog.New(logHandler)))
			r.Get("/test", func(ctx *router.Context) handler.Response {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(tt.status)
					return tt.err
				}
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

			entries := logHandler.all()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			_, hasErr := entries[0]["error"]
			assert.Equal(t, tt.wantError, hasErr)
		})
	}
}

func TestLoggingSkipFunction(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger: slog.New(logHandler),
		Skip: func(ctx handler.Context) bool {
			return strings.HasPrefix(ctx.Request().URL.Path, "/health")
		},
	}))
	r.Get("/test", func(ctx *router.Context) handler.Response { return response.String("ok") })
	r.Get("/health", func(ctx *router.Context) handler.Response { return response.String("ok") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	require.Len(t, logHandler.all(), 1)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, logHandler.all(), 1, "health requests are skipped")
}
