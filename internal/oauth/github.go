package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubConfig holds the GitHub OAuth app settings.
type GitHubConfig struct {
	ClientID     string        `env:"GITHUB_CLIENT_ID,required"`
	ClientSecret string        `env:"GITHUB_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GITHUB_REDIRECT_URL,required"`
	Scopes       []string      `env:"GITHUB_SCOPES" envSeparator:"," envDefault:"user:email"`
	Timeout      time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
}

type githubProvider struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiBaseURL string
	timeout    time.Duration
}

// GitHubOption adjusts the provider, mainly for tests.
type GitHubOption func(*githubProvider)

// WithGitHubEndpoint overrides the token endpoint and API base URL so tests
// can point the provider at a local server.
func WithGitHubEndpoint(tokenURL, apiBaseURL string) GitHubOption {
	return func(p *githubProvider) {
		p.conf.Endpoint = oauth2.Endpoint{AuthURL: tokenURL, TokenURL: tokenURL}
		p.apiBaseURL = apiBaseURL
	}
}

// NewGitHubProvider creates the GitHub identity provider.
func NewGitHubProvider(cfg GitHubConfig, opts ...GitHubOption) Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	p := &githubProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: timeout},
		apiBaseURL: "https://api.github.com",
		timeout:    timeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *githubProvider) Name() string {
	return "github"
}

func (p *githubProvider) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// Exchange trades the code for a token, then resolves the profile from the
// user and emails endpoints. The whole call is bounded by the configured
// timeout so a stalled provider cannot hang the callback request.
func (p *githubProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Route the token exchange through the bounded client as well.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return Profile{}, ErrInvalidGrant
		}
		return Profile{}, errors.Join(ErrProviderUnavailable, err)
	}

	user, err := p.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return Profile{}, err
	}

	email := user.Email
	if email == "" {
		// The public profile email is often unset; the emails endpoint is
		// authoritative when the user:email scope was granted.
		email, err = p.fetchPrimaryEmail(ctx, tok.AccessToken)
		if err != nil {
			return Profile{}, err
		}
	}

	if user.ID == 0 || user.Login == "" {
		return Profile{}, ErrIncompleteProfile
	}
	if email == "" {
		return Profile{}, ErrIncompleteProfile
	}

	return Profile{
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Username:       user.Login,
		Email:          email,
	}, nil
}

func (p *githubProvider) fetchUser(ctx context.Context, accessToken string) (*ghUser, error) {
	var user ghUser
	if err := p.getJSON(ctx, "/user", accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *githubProvider) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []ghEmail
	if err := p.getJSON(ctx, "/user/emails", accessToken, &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Email != "" {
			return e.Email, nil
		}
	}
	return "", nil
}

func (p *githubProvider) getJSON(ctx context.Context, path, accessToken string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return errors.Join(ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrProviderUnavailable, fmt.Errorf("github api returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Join(ErrProviderUnavailable, err)
	}
	return nil
}

type ghUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type ghEmail struct {
	Email   string `json:"email"`
	Primary bool   `json:"primary"`
}

var _ Provider = (*githubProvider)(nil)
