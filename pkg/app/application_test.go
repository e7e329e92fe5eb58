package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"courtly/pkg/client"
	"courtly/pkg/config"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct {
	created *atomic.Int32
}

func (h pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		n := h.created.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"booking_reference":"BK-00000000%02d"}}`, n)
	})
	router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	router.POST("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	})
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	a, _ := newCountingApp(t)
	return a
}

func newCountingApp(t *testing.T) (*Application, *atomic.Int32) {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.Log = logger.Discard()
	cfg.Client = client.NewClient()

	created := &atomic.Int32{}
	a := NewApplication(cfg)
	a.SetApp(pingHandler{created: created})
	t.Cleanup(a.Stop)
	return a, created
}

func TestApplication_MiddlewareChain(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).Handler())
	defer srv.Close()

	tests := []struct {
		name        string
		method      string
		userType    string
		body        string
		contentType string
		wantStatus  int
	}{
		{"no user type", http.MethodGet, "", "", "", http.StatusUnauthorized},
		{"unknown user type", http.MethodGet, "tenant", "", "", http.StatusForbidden},
		{"admin get", http.MethodGet, "admin", "", "", http.StatusOK},
		{"staff post json", http.MethodPost, "staff", `{}`, "application/json", http.StatusCreated},
		{"post wrong content type", http.MethodPost, "admin", `x`, "text/plain", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+"/api/v1/ping", strings.NewReader(tt.body))
			require.NoError(t, err)
			if tt.userType != "" {
				req.Header.Set("X-User-Type", tt.userType)
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestApplication_HealthSkipsGuard(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).Handler())
	defer srv.Close()

	require.NoError(t, client.NewHttpClient(srv.URL, "").WaitForHealthy(context.Background(), 2*time.Second))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplication_UnknownRoute(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).Handler())
	defer srv.Close()

	resp, err := client.NewHttpClient(srv.URL, "admin").GET(context.Background(), "/api/v1/nowhere")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", client.GetErrorMessage(resp))
}

func TestApplication_IdempotentCreateReplays(t *testing.T) {
	a, created := newCountingApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	bookings := client.NewBookingClient(srv.URL, "admin")
	ctx := context.Background()
	body := map[string]string{"court_id": "64b7f0c2a1b2c3d4e5f60718", "date": "2026-11-02"}

	first, err := bookings.CreateIdempotent(ctx, "key-1", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, first.StatusCode, first.String())

	replay, err := bookings.CreateIdempotent(ctx, "key-1", body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, replay.StatusCode)
	assert.Equal(t, string(first.Body), string(replay.Body))
	assert.Equal(t, "true", replay.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), created.Load())

	other, err := bookings.CreateIdempotent(ctx, "key-2", body)
	require.NoError(t, err)
	assert.NotEqual(t, string(first.Body), string(other.Body))
	assert.Equal(t, int32(2), created.Load())
}

func TestHealthHandler_Ready(t *testing.T) {
	router := httprouter.New()
	NewHealthHandler(map[string]Pinger{
		"mongo": PingerFunc(func(context.Context) error { return nil }),
		"redis": PingerFunc(func(context.Context) error { return errors.New("down") }),
	}, logger.Discard()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"error"`)
	assert.Contains(t, w.Body.String(), `"mongo":"ok"`)
}
