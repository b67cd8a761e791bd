package user

import "errors"

var (
	// ErrNotFound indicates no user matches the lookup.
	ErrNotFound = errors.New("user: not found")

	// ErrProviderIDConflict indicates a concurrent create for the same
	// provider user id already committed. The caller re-runs the lookup.
	ErrProviderIDConflict = errors.New("user: provider user id already exists")
)
