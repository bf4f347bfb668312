package server

import (
	"errors"
	"net/http"

	"github.com/jmcnair/carehub/internal/clients/identity"
	"github.com/jmcnair/carehub/internal/models"
)

// tokenProxyError is the error shape returned by the token proxy
// endpoints. Details carries the upstream provider's response body
// verbatim so callers can inspect the provider error code.
type tokenProxyError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// proxyErrorStatus maps identity client error kinds to HTTP statuses.
var proxyErrorStatus = map[identity.ErrorKind]int{
	identity.ErrorInvalidInput:     http.StatusBadRequest,
	identity.ErrorUpstreamRejected: http.StatusBadRequest,
	identity.ErrorTransport:        http.StatusInternalServerError,
}

// writeTokenProxyError translates an identity client error into the
// proxy error response. The client may have disconnected while the
// upstream call was in flight; in that case no response is written.
func (s *Server) writeTokenProxyError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if r.Context().Err() != nil {
		s.logger.Debug().
			Str("action", action).
			Msg("Client disconnected, skipping error response")
		return
	}

	var idErr *identity.Error
	if !errors.As(err, &idErr) {
		WriteJSON(w, http.StatusInternalServerError, tokenProxyError{
			Error:   action + " failed",
			Message: err.Error(),
		})
		return
	}

	status := proxyErrorStatus[idErr.Kind]
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := tokenProxyError{Error: action + " failed"}
	switch idErr.Kind {
	case identity.ErrorUpstreamRejected:
		resp.Details = idErr.Detail
	default:
		resp.Message = idErr.Detail
	}
	WriteJSON(w, status, resp)
}

// handleAuthorizeURL builds the provider authorization URL for the
// browser to begin the sign-in redirect. The caller may supply its own
// redirect_uri; otherwise the server derives one from the inbound
// request host.
func (s *Server) handleAuthorizeURL(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	redirectURI := r.URL.Query().Get("redirect_uri")
	if redirectURI == "" {
		redirectURI = requestScheme(r) + "://" + r.Host + "/api/signin-oidc"
	}

	authorizeURL := s.app.Identity.AuthorizeURL(redirectURI)

	s.logger.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("host", r.Host).
		Str("remote_addr", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Str("query", r.URL.RawQuery).
		Str("redirect_uri", redirectURI).
		Str("scope", s.app.Identity.Scopes()).
		Msg("Authorize URL issued")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(authorizeURL))
}

// handleSigninOIDC is the default landing endpoint for the provider
// redirect. It echoes the authorization response parameters so SPA
// clients and integration tests can observe the callback.
func (s *Server) handleSigninOIDC(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	WriteJSON(w, http.StatusOK, map[string]string{
		"code":              q.Get("code"),
		"state":             q.Get("state"),
		"error":             q.Get("error"),
		"error_description": q.Get("error_description"),
	})
}

// handleTokenRefresh exchanges a refresh token for a fresh token set
// via the identity provider.
func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RefreshTokenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		WriteError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	tokens, err := s.app.Identity.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.logger.Warn().
			Str("action", "refresh").
			Err(err).
			Msg("Token refresh failed")
		s.writeTokenProxyError(w, r, "Token refresh", err)
		return
	}

	if r.Context().Err() != nil {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, tokens)
}

// handleTokenExchange redeems an authorization code (with PKCE
// verifier) for the initial token set.
func (s *Server) handleTokenExchange(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.TokenExchangeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" {
		WriteError(w, http.StatusBadRequest, "code is required")
		return
	}
	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = requestScheme(r) + "://" + r.Host + "/api/signin-oidc"
	}

	tokens, err := s.app.Identity.ExchangeCode(r.Context(), req.Code, req.CodeVerifier, redirectURI)
	if err != nil {
		s.logger.Warn().
			Str("action", "exchange").
			Err(err).
			Msg("Token exchange failed")
		s.writeTokenProxyError(w, r, "Token exchange", err)
		return
	}

	if r.Context().Err() != nil {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, tokens)
}
