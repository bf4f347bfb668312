package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcnair/carehub/internal/common"
)

func testConfig() Config {
	return Config{
		TenantID:     "tenant-123",
		ClientID:     "client-abc",
		ClientSecret: "secret-xyz",
		Scope:        "api://my-api/access_as_user",
	}
}

func TestScopes(t *testing.T) {
	t.Run("with api scope", func(t *testing.T) {
		c := NewClient(testConfig())
		assert.Equal(t, "api://my-api/access_as_user openid profile offline_access", c.Scopes())
	})

	t.Run("without api scope", func(t *testing.T) {
		cfg := testConfig()
		cfg.Scope = ""
		c := NewClient(cfg)
		assert.Equal(t, "openid profile offline_access", c.Scopes())
	})
}

func TestAuthorizeURL(t *testing.T) {
	c := NewClient(testConfig())

	raw := c.AuthorizeURL("https://app.example.com/api/signin-oidc")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "login.microsoftonline.com", u.Host)
	assert.Equal(t, "/tenant-123/oauth2/v2.0/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client-abc", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://app.example.com/api/signin-oidc", q.Get("redirect_uri"))
	assert.Equal(t, "query", q.Get("response_mode"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.Equal(t, "api://my-api/access_as_user openid profile offline_access", q.Get("scope"))
	assert.Len(t, q["scope"], 1)
}

func TestAuthorizeURLEmptyConfig(t *testing.T) {
	// Missing provider settings substitute as empty strings; the URL is
	// still produced so misconfiguration is visible in the output.
	c := NewClient(Config{})

	raw := c.AuthorizeURL("http://localhost:8080/api/signin-oidc")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "//oauth2/v2.0/authorize", u.Path)
	assert.Equal(t, "", u.Query().Get("client_id"))
	assert.Equal(t, "openid profile offline_access", u.Query().Get("scope"))
}

func TestRefreshToken(t *testing.T) {
	var gotForm url.Values
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","expires_in":5400,"token_type":"Bearer"}`))
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL), WithLogger(common.NewSilentLogger()))

	tokens, err := c.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
	assert.Equal(t, 5400, tokens.ExpiresIn)
	assert.Equal(t, "Bearer", tokens.TokenType)

	assert.Equal(t, "client-abc", gotForm.Get("client_id"))
	assert.Equal(t, "refresh_token", gotForm.Get("grant_type"))
	assert.Equal(t, "old-refresh", gotForm.Get("refresh_token"))
	assert.Equal(t, "secret-xyz", gotForm.Get("client_secret"))
	assert.True(t, strings.HasSuffix(gotForm.Get("scope"), "openid profile offline_access"))
}

func TestRefreshTokenEchoesInputWhenNotRotated(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"new-access"}`))
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	tokens, err := c.RefreshToken(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tokens.RefreshToken)
	assert.Equal(t, 3600, tokens.ExpiresIn)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestRefreshTokenEmptyInput(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	_, err := c.RefreshToken(context.Background(), "")
	require.Error(t, err)

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, ErrorInvalidInput, idErr.Kind)
	assert.Equal(t, 0, calls, "no upstream call should be made for empty input")
}

func TestRefreshTokenUpstreamRejected(t *testing.T) {
	upstreamBody := `{"error":"invalid_grant","error_description":"AADSTS70008: The refresh token has expired."}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	_, err := c.RefreshToken(context.Background(), "expired-token")
	require.Error(t, err)

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, ErrorUpstreamRejected, idErr.Kind)
	assert.Equal(t, http.StatusBadRequest, idErr.StatusCode)
	assert.Equal(t, upstreamBody, idErr.Detail, "upstream body must pass through verbatim")
}

func TestRefreshTokenTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // refuse connections

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	_, err := c.RefreshToken(context.Background(), "some-token")
	require.Error(t, err)

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, ErrorTransport, idErr.Kind)
}

func TestRefreshTokenContextCanceled(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.RefreshToken(ctx, "some-token")
	require.Error(t, err)

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, ErrorTransport, idErr.Kind)
}

func TestExchangeCode(t *testing.T) {
	var gotForm url.Values
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"token_type":"Bearer"}`))
	}))
	defer upstream.Close()

	c := NewClient(testConfig(), WithBaseURL(upstream.URL))

	tokens, err := c.ExchangeCode(context.Background(), "auth-code", "verifier-123", "https://app.example.com/api/signin-oidc")
	require.NoError(t, err)
	assert.Equal(t, "at", tokens.AccessToken)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "auth-code", gotForm.Get("code"))
	assert.Equal(t, "verifier-123", gotForm.Get("code_verifier"))
	assert.Equal(t, "https://app.example.com/api/signin-oidc", gotForm.Get("redirect_uri"))
}

func TestExchangeCodeEmptyCode(t *testing.T) {
	c := NewClient(testConfig())

	_, err := c.ExchangeCode(context.Background(), "", "verifier", "uri")
	require.Error(t, err)

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, ErrorInvalidInput, idErr.Kind)
}
