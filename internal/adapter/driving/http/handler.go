// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adalabs/parent-dashboard/internal/application"
	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// sessionCookieName matches the cookie the web adapter sets at login.
const sessionCookieName = "ada_session"

// SessionReader resolves a session token to the signed-in session.
type SessionReader interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	sessions  SessionReader
	healthSvc *application.HealthService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(sessions SessionReader, healthSvc *application.HealthService, logger *slog.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		healthSvc: healthSvc,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes on the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/me", h.Me)
}

// ApplyMiddleware wraps a handler with logging and recovery middleware.
// Recovery sits innermost so panics are caught before logging.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, handler)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// Health reports service and database health. A degraded check answers
// 503 so container orchestration restarts the instance.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	check := h.healthSvc.Check(r.Context())

	status := http.StatusOK
	if check.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, toHealthResponse(check))
}

// Me returns the signed-in parent's account, or 401 for anonymous
// requests. The session token is read from the dashboard cookie, with
// a bearer token fallback for non-browser clients.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CurrentSession(r.Context(), requestToken(r))
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if session == nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	writeJSON(w, http.StatusOK, toMeResponse(*session))
}

// requestToken extracts the session token from the session cookie or,
// failing that, from an Authorization: Bearer header.
func requestToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return strings.TrimSpace(cookie.Value)
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
