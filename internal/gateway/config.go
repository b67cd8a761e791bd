package gateway

import "time"

// Config holds the login flow settings.
type Config struct {
	// SuccessURL receives the browser after a completed login.
	SuccessURL string `env:"LOGIN_SUCCESS_URL,required"`

	// FailureURL receives the browser after any failed attempt. Failures
	// always redirect; this surface never renders an error body.
	FailureURL string `env:"LOGIN_FAILURE_URL,required"`

	// UserIDCookieName is the non-authoritative user id hint cookie. It is
	// display-only for the client; authorization is always re-derived from
	// the session.
	UserIDCookieName string `env:"USER_ID_COOKIE_NAME" envDefault:"userId"`

	// StateCookieName carries the CSRF state token between the login
	// kickoff and the provider callback.
	StateCookieName string `env:"OAUTH_STATE_COOKIE_NAME" envDefault:"oauthState"`

	// StateTTL bounds how long a login attempt may take.
	StateTTL time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`

	// BcryptCost is the work factor for generated credentials.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// SecureCookies mirrors the session cookie security flag for the
	// cookies this package sets itself.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}
