package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengguoheng/shopauth/pkg/cookie"
	"github.com/fengguoheng/shopauth/pkg/session"
)

func setupManager(t *testing.T, ttl time.Duration) *session.Manager {
	t.Helper()

	cookieMgr, err := cookie.New([]string{"test-secret-key-that-is-long-enough!"})
	require.NoError(t, err)

	return session.New(
		session.WithCookieManager(cookieMgr),
		session.WithConfig(session.Config{
			CookieName: "sessionToken",
			TTL:        ttl,
		}),
	)
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Create(t *testing.T) {
	manager := setupManager(t, 24*time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("binds token cookie to response", func(t *testing.T) {
		w := httptest.NewRecorder()
		sess, err := manager.Create(ctx, w, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, sess.UserID)
		assert.NotEmpty(t, sess.Token)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Minute)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sessionToken", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, int((24 * time.Hour).Seconds()), cookies[0].MaxAge)
	})

	t.Run("two logins yield distinct sessions for the same user", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		sess1, err := manager.Create(ctx, w1, userID)
		require.NoError(t, err)

		w2 := httptest.NewRecorder()
		sess2, err := manager.Create(ctx, w2, userID)
		require.NoError(t, err)

		assert.NotEqual(t, sess1.Token, sess2.Token)

		got1, err := manager.Resolve(ctx, requestWithCookies(w1))
		require.NoError(t, err)
		got2, err := manager.Resolve(ctx, requestWithCookies(w2))
		require.NoError(t, err)
		assert.Equal(t, got1.UserID, got2.UserID)
	})
}

func TestManager_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		manager := setupManager(t, time.Hour)
		userID := uuid.New()

		w := httptest.NewRecorder()
		created, err := manager.Create(ctx, w, userID)
		require.NoError(t, err)

		resolved, err := manager.Resolve(ctx, requestWithCookies(w))
		require.NoError(t, err)
		assert.Equal(t, created.ID, resolved.ID)
		assert.Equal(t, userID, resolved.UserID)
	})

	t.Run("no cookie is unauthenticated", func(t *testing.T) {
		manager := setupManager(t, time.Hour)
		_, err := manager.Resolve(ctx, httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})

	t.Run("forged cookie is unauthenticated", func(t *testing.T) {
		manager := setupManager(t, time.Hour)
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "sessionToken", Value: "bm90LWEtdG9rZW4=|forged"})

		_, err := manager.Resolve(ctx, r)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})

	t.Run("expired session is unauthenticated not an error", func(t *testing.T) {
		manager := setupManager(t, 50*time.Millisecond)

		w := httptest.NewRecorder()
		_, err := manager.Create(ctx, w, uuid.New())
		require.NoError(t, err)

		time.Sleep(80 * time.Millisecond)

		_, err = manager.Resolve(ctx, requestWithCookies(w))
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()

	t.Run("destroyed session no longer resolves", func(t *testing.T) {
		manager := setupManager(t, time.Hour)

		w := httptest.NewRecorder()
		_, err := manager.Create(ctx, w, uuid.New())
		require.NoError(t, err)

		r := requestWithCookies(w)
		w2 := httptest.NewRecorder()
		require.NoError(t, manager.Destroy(ctx, w2, r))

		_, err = manager.Resolve(ctx, r)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})

	t.Run("idempotent", func(t *testing.T) {
		manager := setupManager(t, time.Hour)

		w := httptest.NewRecorder()
		_, err := manager.Create(ctx, w, uuid.New())
		require.NoError(t, err)

		r := requestWithCookies(w)
		assert.NoError(t, manager.Destroy(ctx, httptest.NewRecorder(), r))
		assert.NoError(t, manager.Destroy(ctx, httptest.NewRecorder(), r))
	})

	t.Run("no session at all is success", func(t *testing.T) {
		manager := setupManager(t, time.Hour)
		r := httptest.NewRequest("POST", "/logout", nil)
		assert.NoError(t, manager.Destroy(ctx, httptest.NewRecorder(), r))
	})

	t.Run("clears the cookie", func(t *testing.T) {
		manager := setupManager(t, time.Hour)

		w := httptest.NewRecorder()
		_, err := manager.Create(ctx, w, uuid.New())
		require.NoError(t, err)

		w2 := httptest.NewRecorder()
		require.NoError(t, manager.Destroy(ctx, w2, requestWithCookies(w)))

		cookies := w2.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}
