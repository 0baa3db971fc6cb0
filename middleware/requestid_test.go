package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/core/handler"
	"github.com/dmitrymomot/mailrelay/core/logger"
	"github.com/dmitrymomot/mailrelay/core/response"
	"github.com/dmitrymomot/mailrelay/core/router"
	"github.com/dmitrymomot/mailrelay/middleware"
)

func TestRequestIDDefaultConfiguration(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())

	var capturedID string
	r.Get("/test", func(ctx *router.Context) handler.Response {
		id, ok := middleware.GetRequestID(ctx)
		assert.True(t, ok, "Request ID should be present in context")
		capturedID = id
		return response.String("ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, capturedID, 36, "Default ID should be UUID format")
	assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"))
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      middleware.RequestIDConfig
		incoming string
		want     string
	}{
		{
			name: "custom generator",
			cfg:  middleware.RequestIDConfig{Generator: func() string { return "custom-123" }},
			want: "custom-123",
		},
		{
			name:     "incoming id ignored by default",
			cfg:      middleware.RequestIDConfig{Generator: func() string { return "generated" }},
			incoming: "client-id",
			want:     "generated",
		},
		{
			name:     "incoming id reused",
			cfg:      middleware.RequestIDConfig{UseExisting: true, Generator: func() string { return "generated" }},
			incoming: "client-id",
			want:     "client-id",
		},
		{
			name:     "malformed incoming id replaced",
			cfg:      middleware.RequestIDConfig{UseExisting: true, Generator: func() string { return "generated" }},
			incoming: "bad id with spaces",
			want:     "generated",
		},
		{
			name:     "oversized incoming id replaced",
			cfg:      middleware.RequestIDConfig{UseExisting: true, Generator: func() string { return "generated" }},
			incoming: strings.Repeat("x", 129),
			want:     "generated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			r.Use(middleware.RequestIDWithConfig[*router.Context](tt.cfg))

			var capturedID string
			r.Get("/test", func(ctx *router.Context) handler.Response {
				capturedID, _ = middleware.GetRequestID(ctx)
				return response.String("ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, capturedID)
			assert.Equal(t, tt.want, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Skip: func(ctx handler.Context) bool { return true },
	}))

	var found bool
	r.Get("/test", func(ctx *router.Context) handler.Response {
		_, found = middleware.GetRequestID(ctx)
		return response.String("ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.False(t, found)
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	r := router.New[*router.Context]()
	r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	r.Get("/test", func(ctx *router.Context) handler.Response {
		log.InfoContext(ctx, "inside handler")
		return response.String("ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	_, ok := middleware.RequestIDExtractor(context.Background())
	require.False(t, ok)
}
