package model

import "time"

// TokenPair holds the OAuth tokens issued by the auth service for a
// session. AccessToken authorizes userinfo requests; RefreshToken, when
// present, renews the pair after Expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Expired reports whether the access token has passed its expiry. A zero
// Expiry means the auth service did not report one; such tokens are
// treated as non-expiring.
func (t TokenPair) Expired(now time.Time) bool {
	return !t.Expiry.IsZero() && now.After(t.Expiry)
}

// Session is a signed-in browser session. Token is the opaque random
// value stored in the session cookie; Account is a snapshot taken at
// sign-in. ExpiresAt bounds the session itself, independent of the
// access token lifetime inside Tokens.
type Session struct {
	ID        string
	Token     string
	Account   Account
	Tokens    TokenPair
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
