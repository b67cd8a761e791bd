package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/fengguoheng/shopauth/pkg/cookie"
)

// Manager creates, resolves and destroys sessions and moves the token
// through a signed cookie.
type Manager struct {
	store         Store
	config        Config
	cookieManager *cookie.Manager
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store backend.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithCookieManager sets the cookie manager used for the token cookie.
func WithCookieManager(cm *cookie.Manager) Option {
	return func(m *Manager) { m.cookieManager = cm }
}

// New creates a session manager. A cookie manager is required; the store
// defaults to memory.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.cookieManager == nil {
		// Fail fast: without a signing key the token cookie is forgeable.
		panic("session: cookie manager is required")
	}

	return m
}

// Create allocates a session for userID, persists it, and binds the token
// to the response via the signed session cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := NewSession(token, userID, m.config.TTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	m.setCookie(w, token)
	return session, nil
}

// Resolve returns the session referenced by the request cookie. Any miss —
// no cookie, bad signature, unknown token, expired session — comes back as
// ErrUnauthenticated so callers treat the request as anonymous. Storage
// faults are returned as-is.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.cookieManager.GetSigned(r, m.config.CookieName)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return session, nil
}

// Destroy removes the session referenced by the request, if any, and clears
// the cookie. Destroying a missing or already-destroyed session succeeds.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token, err := m.cookieManager.GetSigned(r, m.config.CookieName)
	if err == nil && token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}

	m.cookieManager.Delete(w, m.config.CookieName)
	return nil
}

// CookieName exposes the configured session cookie name for handlers that
// need to clear related cookies alongside it.
func (m *Manager) CookieName() string {
	return m.config.CookieName
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(m.config.TTL.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if m.config.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}

	m.cookieManager.SetSigned(w, m.config.CookieName, token, opts...)
}

// generateToken creates a cryptographically secure opaque token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
