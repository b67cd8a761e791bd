package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session token cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sessionToken"`

	// TTL is the fixed session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CleanupInterval controls the memory store's storage hygiene sweep.
	// Zero disables it; expiry is still enforced lazily on Resolve.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"0"`

	// SecureCookies sets the Secure flag on the session cookie. Enabled in
	// production where all traffic is HTTPS.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "sessionToken",
		TTL:           24 * time.Hour,
		SecureCookies: false,
	}
}
