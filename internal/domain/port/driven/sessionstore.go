package driven

import (
	"context"
	"errors"
	"time"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// ErrSessionNotFound indicates the referenced session does not exist,
// typically because it was signed out or swept concurrently.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the driven port for session persistence. The
// adapter layer is responsible for encrypting stored OAuth tokens; this
// interface operates on plaintext values at the domain boundary.
type SessionStore interface {
	// Create persists a new session.
	Create(ctx context.Context, session model.Session) error

	// GetByToken retrieves the session for the given cookie token.
	// Returns (nil, nil) if no session exists for that token.
	GetByToken(ctx context.Context, token string) (*model.Session, error)

	// UpdateTokens replaces the stored token pair after a refresh.
	// Returns ErrSessionNotFound if the session no longer exists.
	UpdateTokens(ctx context.Context, token string, tokens model.TokenPair) error

	// Delete removes the session for the given cookie token. Deleting a
	// token with no session is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions whose ExpiresAt is before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
