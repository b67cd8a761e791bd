package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fengguoheng/shopauth/pkg/pg"
)

// PostgresStore implements Store on the shared pgx pool. The unique index
// on provider_user_id is the synchronization primitive for first-login
// races; there is no read-then-write locking here.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed user store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, provider_user_id, username, password_hash, email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.ProviderUserID, u.Username, u.PasswordHash, u.Email, u.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrProviderIDConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByProviderID(ctx context.Context, providerUserID string) (*User, error) {
	return s.findOne(ctx,
		`SELECT id, provider_user_id, username, password_hash, email, created_at
		 FROM users WHERE provider_user_id = $1`,
		providerUserID,
	)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx,
		`SELECT id, provider_user_id, username, password_hash, email, created_at
		 FROM users WHERE id = $1`,
		id,
	)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.ProviderUserID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

var _ Store = (*PostgresStore)(nil)
