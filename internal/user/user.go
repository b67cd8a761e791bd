// Package user is the system of record for local identities created from
// federated logins.
//
// The store enforces at most one record per provider user id with a unique
// index, not an application-level lock: concurrent first logins race at the
// insert, one wins, and the loser gets ErrProviderIDConflict to resolve by
// re-reading. Records are created on first login and only read afterwards.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a durable local account. PasswordHash is always set — accounts
// born from a federated login get a generated credential — but no login
// path verifies it.
type User struct {
	ID             uuid.UUID
	ProviderUserID string
	Username       string
	PasswordHash   string
	Email          string
	CreatedAt      time.Time
}

// Store defines the persistence operations the gateway needs.
type Store interface {
	// Create inserts a new user. Returns ErrProviderIDConflict when a
	// record with the same provider user id already exists.
	Create(ctx context.Context, u *User) error

	// FindByProviderID returns the user for a federated identity, or
	// ErrNotFound.
	FindByProviderID(ctx context.Context, providerUserID string) (*User, error)

	// FindByID returns the user by local id, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
