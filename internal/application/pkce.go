package application

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// randomHex returns n random bytes as a hex string. Used for login flow
// states and session cookie tokens.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// generateCodeVerifier returns a random PKCE code verifier (64 hex characters).
func generateCodeVerifier() (string, error) {
	return randomHex(32)
}

// computeS256Challenge computes the S256 PKCE challenge from a code verifier.
func computeS256Challenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
