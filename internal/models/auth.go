package models

// RefreshTokenRequest is the inbound body for POST /api/auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenExchangeRequest is the inbound body for POST /api/auth/token.
// The caller supplies an authorization code obtained from the identity
// provider together with the PKCE verifier it generated.
type TokenExchangeRequest struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	RedirectURI  string `json:"redirect_uri"`
}

// TokenSet is the normalized token response relayed to callers. Defaults are
// applied before this struct is built: refresh_token echoes the caller's
// token when the provider omits rotation, expires_in falls back to 3600 and
// token_type to "Bearer".
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
