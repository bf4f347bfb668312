// Package identity provides a client for the external OAuth2 identity
// provider (Microsoft Entra ID v2.0 endpoints).
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/interfaces"
	"github.com/jmcnair/carehub/internal/models"
)

const (
	DefaultBaseURL = "https://login.microsoftonline.com"
	DefaultTimeout = 30 * time.Second

	// baseScopes is always present in the outgoing scope string, so the
	// provider issues an ID token and a rotating refresh token.
	baseScopes = "openid profile offline_access"
)

// Config holds the resolved provider settings for one client instance.
// Values are resolved once at startup; empty values are substituted as-is
// into outgoing requests rather than rejected.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Scope        string // resolved API scope, may be empty
}

// Client implements the IdentityClient interface
type Client struct {
	baseURL    string
	config     Config
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new identity provider client
func NewClient(config Config, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		config:  config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Scopes returns the full scope string sent to the provider. The API scope
// prefixes the base scopes when resolved; the result is never empty.
func (c *Client) Scopes() string {
	if c.config.Scope == "" {
		return baseScopes
	}
	return c.config.Scope + " " + baseScopes
}

// AuthorizeURL builds the provider's OAuth2 v2.0 authorize URL for the given
// redirect URI. Missing tenant or client id substitute as empty strings.
func (c *Client) AuthorizeURL(redirectURI string) string {
	q := url.Values{}
	q.Set("client_id", c.config.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", redirectURI)
	q.Set("response_mode", "query")
	q.Set("scope", c.Scopes())
	q.Set("prompt", "select_account")

	return fmt.Sprintf("%s/%s/oauth2/v2.0/authorize?%s", c.baseURL, c.config.TenantID, q.Encode())
}

// RefreshToken exchanges a refresh token for a new token set. An empty token
// is rejected before any network call. When the provider omits a rotated
// refresh token, the caller's token is echoed back.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	if refreshToken == "" {
		return nil, &Error{Kind: ErrorInvalidInput, Detail: "refresh_token is required"}
	}

	form := url.Values{
		"client_id":     {c.config.ClientID},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"scope":         {c.Scopes()},
		"client_secret": {c.config.ClientSecret},
	}

	tokens, err := c.postToken(ctx, form)
	if err != nil {
		return nil, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

// ExchangeCode exchanges an authorization code (with its PKCE verifier) for a
// token set.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier, redirectURI string) (*models.TokenSet, error) {
	if code == "" {
		return nil, &Error{Kind: ErrorInvalidInput, Detail: "code is required"}
	}

	form := url.Values{
		"client_id":     {c.config.ClientID},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"code_verifier": {codeVerifier},
		"redirect_uri":  {redirectURI},
		"scope":         {c.Scopes()},
		"client_secret": {c.config.ClientSecret},
	}

	return c.postToken(ctx, form)
}

// postToken performs the single outbound token-endpoint call. No retry: a
// failed exchange against the provider is surfaced immediately.
func (c *Client) postToken(ctx context.Context, form url.Values) (*models.TokenSet, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.baseURL, c.config.TenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	// Secrets and tokens stay out of the log fields.
	c.logger.Debug().
		Str("tenant_id", c.config.TenantID).
		Str("grant_type", form.Get("grant_type")).
		Msg("Identity token request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       ErrorUpstreamRejected,
			StatusCode: resp.StatusCode,
			Detail:     string(body),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, transportError(fmt.Errorf("failed to decode token response: %w", err))
	}

	tokens := &models.TokenSet{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    tr.ExpiresIn,
		TokenType:    tr.TokenType,
	}
	if tokens.ExpiresIn == 0 {
		tokens.ExpiresIn = 3600
	}
	if tokens.TokenType == "" {
		tokens.TokenType = "Bearer"
	}
	return tokens, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Ensure Client implements IdentityClient
var _ interfaces.IdentityClient = (*Client)(nil)
