package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory with the same uniqueness
// semantics as the Postgres store. Used by tests to exercise the gateway
// without a database.
type MemoryStore struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*User
	byProvider map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]*User),
		byProvider: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) Create(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check-and-insert under one lock mirrors the database's atomic
	// unique-index enforcement.
	if _, exists := m.byProvider[u.ProviderUserID]; exists {
		return ErrProviderIDConflict
	}

	copied := *u
	m.byID[u.ID] = &copied
	m.byProvider[u.ProviderUserID] = u.ID
	return nil
}

func (m *MemoryStore) FindByProviderID(ctx context.Context, providerUserID string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byProvider[providerUserID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m.byID[id]
	return &copied, nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// Count reports the number of stored users.
func (m *MemoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

var _ Store = (*MemoryStore)(nil)
