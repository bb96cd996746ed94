package model

import "time"

// LoginFlow is a pending sign-in attempt awaiting its callback. State is
// the random value round-tripped through the auth service; Verifier is
// the PKCE code verifier the token exchange must present. Flows are
// consumed exactly once.
type LoginFlow struct {
	State     string
	Verifier  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the flow has passed its expiry.
func (f LoginFlow) Expired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}
