package oauth

import "errors"

var (
	// ErrProviderUnavailable covers network failures and timeouts talking
	// to the identity provider. Never retried server-side; the user simply
	// re-initiates login.
	ErrProviderUnavailable = errors.New("oauth: identity provider unavailable")

	// ErrInvalidGrant indicates the provider rejected the authorization
	// code (expired, reused, or forged). Terminal for the attempt.
	ErrInvalidGrant = errors.New("oauth: authorization code rejected")

	// ErrIncompleteProfile indicates the provider returned no usable
	// identity or email. Nothing is persisted from a partial identity.
	ErrIncompleteProfile = errors.New("oauth: provider profile incomplete")
)
