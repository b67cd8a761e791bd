package oauth

import "context"

// Profile is the normalized identity a provider asserts for one login
// attempt. It is transient: consumed by reconciliation, never stored as-is.
type Profile struct {
	// ProviderUserID is the provider's stable user identifier, stringified.
	ProviderUserID string

	// Username is the provider-side handle, used as the local display name.
	Username string

	// Email is the address the provider vouches for. Empty email fails the
	// exchange with ErrIncompleteProfile before this struct is returned.
	Email string
}

// Provider abstracts one OAuth2 identity provider.
type Provider interface {
	// Name returns the stable provider identifier, e.g. "github".
	Name() string

	// AuthURL builds the provider authorization URL carrying the CSRF
	// state token.
	AuthURL(state string) string

	// Exchange trades the authorization code for the user's profile. The
	// call bounds its own wait; it returns ErrProviderUnavailable,
	// ErrInvalidGrant, or ErrIncompleteProfile on failure.
	Exchange(ctx context.Context, code string) (Profile, error)
}
