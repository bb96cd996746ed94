// Package web implements the HTML driving adapter for the parent
// dashboard: the public landing page, the login round trip against the
// hosted auth service and the signed-in dashboard pages.
package web

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/adalabs/parent-dashboard/internal/adapter/driving/web/viewmodel"
	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// dashboardPath is where the auth callback always lands, signed in or not.
const dashboardPath = "/dashboard"

// AuthFlows is the slice of the auth service the web adapter drives.
type AuthFlows interface {
	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (*model.Session, error)
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
}

// Handler is the web driving adapter that serves HTML pages.
type Handler struct {
	auth          AuthFlows
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(auth AuthFlows, secureCookies bool, logger *slog.Logger) *Handler {
	return &Handler{
		auth:          auth,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Landing renders the public landing page. Signed-in parents are sent
// straight to the dashboard.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	if h.currentSession(r) != nil {
		http.Redirect(w, r, dashboardPath, http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "landing.html", h.newPage(w, r, "Welcome", "", nil))
}

// Dashboard renders the signed-in home page. Anonymous visitors are
// sent back to the landing page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := h.currentSession(r)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	page := viewmodel.Dashboard{
		Page:           h.newPage(w, r, "Dashboard", "dashboard", session),
		SessionExpires: session.ExpiresAt.Format("January 2, 2006"),
	}
	h.render(w, http.StatusOK, "dashboard.html", page)
}

// About renders the embedded About content through the markdown pipeline.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	page := viewmodel.About{
		Page:    h.newPage(w, r, "About", "about", h.currentSession(r)),
		Content: template.HTML(RenderMarkdown(aboutMarkdown)), //nolint:gosec // sanitized by RenderMarkdown
	}
	h.render(w, http.StatusOK, "about.html", page)
}

// Login starts the login round trip by redirecting to the auth service
// authorization page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.auth.BeginLogin(r.Context())
	if err != nil {
		h.logger.Error("failed to begin login", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback finishes the login round trip. The browser always ends up on
// the dashboard: on success it arrives with a fresh session cookie, on
// any failure it arrives anonymous and the dashboard bounces it to the
// landing page. The auth service may redirect here without a code when
// the parent cancels, which follows the failure path.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	session, err := h.auth.CompleteLogin(r.Context(), code, state)
	if err != nil {
		h.logger.Warn("login callback rejected", "error", err)
	} else {
		h.setSessionCookie(w, session.Token, session.ExpiresAt)
	}

	http.Redirect(w, r, dashboardPath, http.StatusFound)
}

// Signout deletes the server-side session and clears the cookie. The
// form token must match the CSRF cookie.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	if err := h.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		h.logger.Error("failed to log out session", "error", err)
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentSession resolves the request's session, treating lookup
// failures as anonymous so page handlers stay on their happy path.
func (h *Handler) currentSession(r *http.Request) *model.Session {
	session, err := h.auth.CurrentSession(r.Context(), sessionToken(r))
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		return nil
	}
	return session
}

// newPage assembles the layout data shared by every page.
func (h *Handler) newPage(w http.ResponseWriter, r *http.Request, title, active string, session *model.Session) viewmodel.Page {
	page := viewmodel.Page{
		Title:  title,
		Active: active,
		Year:   time.Now().Year(),
		CSRF:   h.ensureCSRFToken(w, r),
	}
	if session != nil {
		page.Account = accountView(session.Account)
	}
	return page
}

func accountView(account model.Account) *viewmodel.Account {
	name := account.Name
	if name == "" {
		name = account.Email
	}
	return &viewmodel.Account{
		Name:      name,
		Email:     account.Email,
		AvatarURL: account.AvatarURL,
	}
}
