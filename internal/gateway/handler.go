package gateway

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fengguoheng/shopauth/internal/user"
	"github.com/fengguoheng/shopauth/pkg/cookie"
	"github.com/fengguoheng/shopauth/pkg/logger"
	"github.com/fengguoheng/shopauth/pkg/session"
)

// Handler exposes the login flow over HTTP.
type Handler struct {
	cfg      Config
	svc      *Service
	sessions *session.Manager
	cookies  *cookie.Manager
}

// NewHandler wires the HTTP surface for the gateway.
func NewHandler(cfg Config, svc *Service, sessions *session.Manager, cookies *cookie.Manager) *Handler {
	return &Handler{
		cfg:      cfg,
		svc:      svc,
		sessions: sessions,
		cookies:  cookies,
	}
}

// Router mounts the auth routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/auth/"+h.svc.ProviderName(), h.handleLogin)
	r.Get("/auth/"+h.svc.ProviderName()+"/callback", h.handleCallback)
	r.Get("/check", h.handleCheck)
	r.Post("/logout", h.handleLogout)

	return r
}

// handleLogin starts federation: it binds a CSRF state token to the
// browser and forwards it to the provider's consent page.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, authURL, err := h.svc.BeginLogin()
	if err != nil {
		h.svc.log.ErrorContext(r.Context(), "failed to begin login",
			logger.Error(err), logger.Component("gateway"))
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	h.cookies.SetSigned(w, h.cfg.StateCookieName, state,
		cookie.WithMaxAge(int(h.cfg.StateTTL.Seconds())),
		cookie.WithSecure(h.cfg.SecureCookies),
	)

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleCallback consumes the authorization grant. Every failure takes the
// same exit: a redirect to the failure URL with nothing persisted and no
// error detail for the client.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.cookies.GetSigned(r, h.cfg.StateCookieName)
	h.cookies.Delete(w, h.cfg.StateCookieName) // one-time use
	if err != nil || !stateMatches(state, r.URL.Query().Get("state")) {
		h.svc.log.WarnContext(ctx, "callback state mismatch", logger.Component("gateway"))
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.svc.log.WarnContext(ctx, "callback missing authorization code", logger.Component("gateway"))
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	u, err := h.svc.CompleteLogin(ctx, code)
	if err != nil {
		h.svc.log.WarnContext(ctx, "login attempt failed",
			logger.Error(err), logger.Provider(h.svc.ProviderName()), logger.Component("gateway"))
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	sess, err := h.sessions.Create(ctx, w, u.ID)
	if err != nil {
		h.svc.log.ErrorContext(ctx, "failed to create session",
			logger.Error(err), logger.UserID(u.ID.String()), logger.Component("gateway"))
		http.Redirect(w, r, h.cfg.FailureURL, http.StatusFound)
		return
	}

	// Display-only hint for the client UI. Authorization always re-derives
	// the user from the session, never from this cookie.
	h.cookies.Set(w, h.cfg.UserIDCookieName, u.ID.String(),
		cookie.WithMaxAge(int(time.Until(sess.ExpiresAt).Seconds())),
		cookie.WithSecure(h.cfg.SecureCookies),
	)

	http.Redirect(w, r, h.cfg.SuccessURL, http.StatusFound)
}

type checkResponse struct {
	IsLoggedIn bool       `json:"isLoggedIn"`
	User       *checkUser `json:"user"`
}

type checkUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// handleCheck reports the current session state. It never mutates and
// never fails an anonymous caller.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Resolve(ctx, r)
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			writeJSON(w, http.StatusOK, checkResponse{IsLoggedIn: false})
			return
		}
		h.svc.log.ErrorContext(ctx, "session resolution failed",
			logger.Error(err), logger.Component("gateway"))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	u, err := h.svc.UserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Session outlived its user record; treat as anonymous.
			writeJSON(w, http.StatusOK, checkResponse{IsLoggedIn: false})
			return
		}
		h.svc.log.ErrorContext(ctx, "user lookup failed",
			logger.Error(err), logger.UserID(sess.UserID.String()), logger.Component("gateway"))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		IsLoggedIn: true,
		User:       &checkUser{ID: u.ID.String(), Username: u.Username},
	})
}

// handleLogout destroys the session and clears both cookies. Logging out
// twice, or with no session at all, succeeds.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.svc.log.ErrorContext(r.Context(), "failed to destroy session",
			logger.Error(err), logger.Component("gateway"))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.cookies.Delete(w, h.cfg.UserIDCookieName)
	w.WriteHeader(http.StatusNoContent)
}

func stateMatches(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
