package interfaces

import (
	"context"

	"github.com/jmcnair/carehub/internal/models"
)

// IdentityClient talks to the external OAuth2 identity provider.
//
// RefreshToken and ExchangeCode each perform at most one outbound call and
// never retry; failures surface immediately as *identity.Error values with an
// explicit error kind.
type IdentityClient interface {
	// AuthorizeURL builds the provider's authorize endpoint URL for the
	// given redirect URI. Missing configuration degrades to empty-string
	// substitution rather than failure.
	AuthorizeURL(redirectURI string) string

	// Scopes returns the full scope string sent to the provider; never empty.
	Scopes() string

	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenSet, error)
	ExchangeCode(ctx context.Context, code, codeVerifier, redirectURI string) (*models.TokenSet, error)
}
