package gateway

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fengguoheng/shopauth/internal/oauth"
	"github.com/fengguoheng/shopauth/internal/user"
	"github.com/fengguoheng/shopauth/pkg/credential"
	"github.com/fengguoheng/shopauth/pkg/logger"
	"github.com/fengguoheng/shopauth/pkg/sanitizer"
)

// Service orchestrates the login flow against the provider, the user store
// and the credential generator. Dependencies are injected so tests can
// substitute fakes for every collaborator.
type Service struct {
	provider oauth.Provider
	users    user.Store
	creds    *credential.Generator
	log      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// NewService creates the login orchestrator.
func NewService(provider oauth.Provider, users user.Store, creds *credential.Generator, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		users:    users,
		creds:    creds,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginLogin generates a fresh CSRF state token and the provider
// authorization URL carrying it.
func (s *Service) BeginLogin() (state, authURL string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	state = base64.RawURLEncoding.EncodeToString(b)
	return state, s.provider.AuthURL(state), nil
}

// CompleteLogin runs the callback flow for an authorization code: exchange
// the code for a profile, then reconcile the federated identity against
// the local store. Provider errors surface untouched so the handler can
// treat every one of them as a failed attempt; nothing is persisted on any
// failure path.
func (s *Service) CompleteLogin(ctx context.Context, code string) (*user.User, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	u, err := s.reconcile(ctx, profile)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// reconcile maps a federated profile to exactly one local user, creating
// the record on first sight. Losing the create race is resolved by one
// follow-up lookup: the winning insert is already committed when the
// unique index rejects ours.
func (s *Service) reconcile(ctx context.Context, profile oauth.Profile) (*user.User, error) {
	existing, err := s.users.FindByProviderID(ctx, profile.ProviderUserID)
	if err == nil {
		s.log.InfoContext(ctx, "existing user logged in",
			logger.UserID(existing.ID.String()),
			logger.Provider(s.provider.Name()),
			logger.Component("gateway"),
		)
		return existing, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// First login: the account needs a credential even though it will only
	// ever authenticate through the provider. The plaintext is dropped on
	// the floor, deliberately.
	_, hash, err := s.creds.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate credential: %w", err)
	}

	u := &user.User{
		ID:             uuid.New(),
		ProviderUserID: profile.ProviderUserID,
		Username:       profile.Username,
		PasswordHash:   hash,
		Email:          sanitizer.NormalizeEmail(profile.Email),
		CreatedAt:      time.Now(),
	}

	err = s.users.Create(ctx, u)
	if err == nil {
		s.log.InfoContext(ctx, "new user created",
			logger.UserID(u.ID.String()),
			logger.Provider(s.provider.Name()),
			logger.Component("gateway"),
		)
		return u, nil
	}
	if !errors.Is(err, user.ErrProviderIDConflict) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// A concurrent first login won the insert; its row is visible now.
	winner, err := s.users.FindByProviderID(ctx, profile.ProviderUserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user after create conflict: %w", err)
	}
	return winner, nil
}

// UserByID loads a user for an established session.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

// ProviderName reports which identity provider this gateway federates.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
