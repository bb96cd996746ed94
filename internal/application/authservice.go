// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
	"github.com/adalabs/parent-dashboard/internal/domain/port/driven"
)

// flowTTL bounds how long a sign-in may sit between the redirect to the
// auth service and the callback.
const flowTTL = 10 * time.Minute

// AuthService orchestrates sign-in, sign-out and session resolution. All
// token issuance is delegated to the auth gateway; this service only
// tracks flows and sessions around it.
type AuthService struct {
	gateway    driven.AuthGateway
	sessions   driven.SessionStore
	flows      driven.FlowStore
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService with the required dependencies.
func NewAuthService(gateway driven.AuthGateway, sessions driven.SessionStore, flows driven.FlowStore, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		gateway:    gateway,
		sessions:   sessions,
		flows:      flows,
		sessionTTL: sessionTTL,
	}
}

// BeginLogin creates a pending login flow and returns the auth service
// authorize URL to redirect the browser to.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	state, err := randomHex(32)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	verifier, err := generateCodeVerifier()
	if err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}

	flow := model.LoginFlow{
		State:     state,
		Verifier:  verifier,
		ExpiresAt: time.Now().UTC().Add(flowTTL),
	}
	if err := s.flows.Create(ctx, flow); err != nil {
		return "", fmt.Errorf("create login flow: %w", err)
	}

	return s.gateway.AuthCodeURL(state, computeS256Challenge(verifier)), nil
}

// CompleteLogin consumes the flow for state, exchanges the authorization
// code through the gateway, loads the account profile and persists a new
// session. The returned session carries the cookie token to set.
func (s *AuthService) CompleteLogin(ctx context.Context, code, state string) (*model.Session, error) {
	if code == "" {
		return nil, errors.New("authorization code missing")
	}

	flow, err := s.flows.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("consume login flow: %w", err)
	}
	if flow == nil {
		return nil, errors.New("unknown or already used state")
	}

	now := time.Now().UTC()
	if flow.Expired(now) {
		return nil, errors.New("login flow expired")
	}

	pair, err := s.gateway.Exchange(ctx, code, flow.Verifier)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	account, err := s.gateway.FetchAccount(ctx, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := model.Session{
		Token:     token,
		Account:   *account,
		Tokens:    *pair,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	slog.Info("parent signed in", "account", account.ID)
	return &session, nil
}

// CurrentSession resolves a cookie token to a live session. Expired
// sessions are dropped and resolve to nil. When the access token inside a
// live session has expired, it is refreshed through the gateway and the
// stored pair replaced; a failed refresh keeps the session alive on the
// stale pair, since dashboard pages render from the account snapshot.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			slog.Error("delete expired session failed", "error", err)
		}
		return nil, nil
	}

	if session.Tokens.Expired(now) && session.Tokens.RefreshToken != "" {
		pair, err := s.gateway.Refresh(ctx, session.Tokens.RefreshToken)
		if err != nil {
			slog.Warn("token refresh failed", "account", session.Account.ID, "error", err)
			return session, nil
		}

		session.Tokens = *pair
		if err := s.sessions.UpdateTokens(ctx, token, *pair); err != nil {
			slog.Error("store refreshed tokens failed", "account", session.Account.ID, "error", err)
		}
	}

	return session, nil
}

// Logout deletes the session for the given cookie token. Unknown tokens
// are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
