package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/adalabs/parent-dashboard/internal/adapter/driving/http"
	"github.com/adalabs/parent-dashboard/internal/application"
	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// --- Mock implementations ---

type mockSessions struct {
	session *model.Session
	err     error
	token   string
}

func (m *mockSessions) CurrentSession(_ context.Context, token string) (*model.Session, error) {
	m.token = token
	return m.session, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error {
	return m.err
}

func newTestMux(sessions httphandler.SessionReader, pingErr error) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	healthSvc := application.NewHealthService(&mockPinger{err: pingErr})
	h := httphandler.NewHandler(sessions, healthSvc, logger)
	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, h)
	return httphandler.ApplyMiddleware(mux, logger)
}

func testSession() *model.Session {
	return &model.Session{
		Token: "tok-1",
		Account: model.Account{
			ID:        "acc-1",
			Email:     "parent@example.com",
			Name:      "Jordan Parent",
			AvatarURL: "https://cdn.ada.example/a.png",
		},
		ExpiresAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- Health ---

func TestHealth_OK(t *testing.T) {
	mux := newTestMux(&mockSessions{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp httphandler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, resp.Time)
}

func TestHealth_DatabaseDown(t *testing.T) {
	mux := newTestMux(&mockSessions{}, errors.New("locked"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp httphandler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Database)
}

// --- Me ---

func TestMe_SignedIn(t *testing.T) {
	sessions := &mockSessions{session: testSession()}
	mux := newTestMux(sessions, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "ada_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", sessions.token)

	var resp httphandler.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "acc-1", resp.ID)
	assert.Equal(t, "parent@example.com", resp.Email)
	assert.Equal(t, "Jordan Parent", resp.Name)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp.SessionExpiresAt)
}

func TestMe_BearerToken(t *testing.T) {
	sessions := &mockSessions{session: testSession()}
	mux := newTestMux(sessions, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", sessions.token)
}

func TestMe_Anonymous(t *testing.T) {
	mux := newTestMux(&mockSessions{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not signed in"}`, rec.Body.String())
}

func TestMe_UnknownToken(t *testing.T) {
	mux := newTestMux(&mockSessions{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "ada_session", Value: "tok-stale"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_LookupError(t *testing.T) {
	mux := newTestMux(&mockSessions{err: errors.New("db locked")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "ada_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMe_NeverExposesAuthTokens(t *testing.T) {
	session := testSession()
	session.Tokens = model.TokenPair{
		AccessToken:  "access-secret",
		RefreshToken: "refresh-secret",
	}
	mux := newTestMux(&mockSessions{session: session}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "ada_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "access-secret")
	assert.NotContains(t, rec.Body.String(), "refresh-secret")
}

// --- Routing ---

func TestUnknownRoute(t *testing.T) {
	mux := newTestMux(&mockSessions{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&mockSessions{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
