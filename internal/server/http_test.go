package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/WidadAlkibsi/TriviaProject/internal/config"
)

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         600,
		},
	}
}

func TestHealthz(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestPingReportsFailingDependency(t *testing.T) {
	pings := map[string]PingFunc{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}
	h := NewHandler(testConfig(), zerolog.New(io.Discard), pings, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	err := pingDependencies(context.Background(), pings)
	assert.ErrorContains(t, err, "redis: connection refused")
}

func TestPingOK(t *testing.T) {
	pings := map[string]PingFunc{"postgres": func(context.Context) error { return nil }}
	h := NewHandler(testConfig(), zerolog.New(io.Discard), pings, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,DELETE,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestQuizStreamNotConfigured(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/quizzes", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestWSUpgraderChecksOrigin(t *testing.T) {
	up := NewWSUpgrader(testConfig().CORS)

	req := httptest.NewRequest(http.MethodGet, "/ws/quizzes", nil)
	assert.True(t, up.CheckOrigin(req), "no origin header is allowed")

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, up.CheckOrigin(req))
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":404,"message":"Not Found","code":"not_found"}`, rec.Body.String())
}

func TestWrongMethodUsesEnvelope(t *testing.T) {
	h := NewHandler(testConfig(), zerolog.New(io.Discard), nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/healthz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
	assert.JSONEq(t, `{"success":false,"error":405,"message":"Method not allowed","code":"method_not_allowed"}`, rec.Body.String())
}
