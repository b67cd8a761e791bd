package session

import "errors"

var (
	// ErrUnauthenticated covers every non-error miss: no cookie, bad
	// signature, unknown token, expired session. Callers degrade to an
	// anonymous request instead of failing.
	ErrUnauthenticated = errors.New("session.unauthenticated")

	// ErrSessionNotFound indicates the store has no session for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session TTL has elapsed.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession indicates a malformed session passed to a store.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates the crypto source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
