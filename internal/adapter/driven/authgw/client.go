// Package authgw implements the AuthGateway port against the hosted Ada
// auth service using the golang.org/x/oauth2 client.
package authgw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
	"github.com/adalabs/parent-dashboard/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuthGateway = (*Client)(nil)

// Client implements the driven.AuthGateway port. Endpoints are derived
// from the auth service base URL: /authorize, /token and /userinfo.
type Client struct {
	oauth       *oauth2.Config
	userinfoURL string
	base        *http.Client // Underlying transport for all auth service calls.
}

// NewClient creates a new auth service client. Requests run over an
// httpcache memory transport so userinfo responses that the service marks
// cacheable are served from memory on revalidation.
func NewClient(baseURL, clientID, clientSecret, redirectURL string) *Client {
	return newClient(httpcache.NewMemoryCacheTransport().Client(), baseURL, clientID, clientSecret, redirectURL)
}

// NewClientWithHTTPClient creates a Client that performs all requests
// with the given http.Client. This constructor is intended for testing,
// allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, clientID, clientSecret, redirectURL string) *Client {
	return newClient(httpClient, baseURL, clientID, clientSecret, redirectURL)
}

func newClient(httpClient *http.Client, baseURL, clientID, clientSecret, redirectURL string) *Client {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  baseURL + "/authorize",
			TokenURL: baseURL + "/token",
		},
		RedirectURL: redirectURL,
		Scopes:      []string{"openid", "profile", "email"},
	}

	return &Client{
		oauth:       cfg,
		userinfoURL: baseURL + "/userinfo",
		base:        httpClient,
	}
}

// AuthCodeURL builds the authorize URL for a new sign-in with the given
// state and S256 PKCE challenge.
func (c *Client) AuthCodeURL(state, challenge string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Exchange redeems a one-time authorization code for a token pair,
// presenting the PKCE verifier the flow was started with.
func (c *Client) Exchange(ctx context.Context, code, verifier string) (*model.TokenPair, error) {
	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return mapToken(tok), nil
}

// Refresh obtains a fresh token pair using a refresh token. When the
// service does not rotate the refresh token, the previous one is carried
// over into the returned pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	tok, err := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
	}).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return mapToken(tok), nil
}

// FetchAccount loads the account profile behind an access token from the
// service's userinfo endpoint.
func (c *Client) FetchAccount(ctx context.Context, accessToken string) (*model.Account, error) {
	ctx = c.withHTTPClient(ctx)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var claims struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &model.Account{
		ID:        claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}

// withHTTPClient routes the oauth2 library's requests through the
// client's transport instead of http.DefaultClient.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.base)
}

// mapToken converts an oauth2.Token to a domain model TokenPair.
func mapToken(tok *oauth2.Token) *model.TokenPair {
	return &model.TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
}
