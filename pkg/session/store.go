package session

import "context"

// Store defines the interface for session persistence. Delete must be
// idempotent: deleting an absent token is success.
type Store interface {
	// Create stores a new session keyed by its token.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound for
	// unknown tokens and ErrSessionExpired for sessions past their TTL.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions (storage hygiene only).
	DeleteExpired(ctx context.Context) error
}
