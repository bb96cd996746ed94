package driven

import (
	"context"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
)

// AuthGateway defines the driven port for the hosted Ada auth service.
// The dashboard delegates all token issuance to the service; nothing in
// this repo mints or validates tokens itself.
type AuthGateway interface {
	// AuthCodeURL builds the authorize URL a browser is redirected to when
	// starting a sign-in. state is round-tripped through the service;
	// challenge is the S256 PKCE challenge derived from the flow verifier.
	AuthCodeURL(state, challenge string) string

	// Exchange redeems a one-time authorization code for a token pair,
	// presenting the PKCE verifier the flow was started with.
	Exchange(ctx context.Context, code, verifier string) (*model.TokenPair, error)

	// Refresh obtains a fresh token pair using a refresh token. The
	// returned pair may carry a rotated refresh token.
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)

	// FetchAccount loads the account profile behind an access token from
	// the service's userinfo endpoint.
	FetchAccount(ctx context.Context, accessToken string) (*model.Account, error)
}
