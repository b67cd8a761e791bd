package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengguoheng/shopauth/pkg/cookie"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return m
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Run("rejects empty secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSetGet(t *testing.T) {
	m := newManager(t)

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value")

		got, err := m.Get(requestWithCookies(w), "name")
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := m.Get(r, "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("default attributes", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, "/", cookies[0].Path)
	})

	t.Run("per-write options override defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", cookie.WithMaxAge(60), cookie.WithSecure(true))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, 60, cookies[0].MaxAge)
		assert.True(t, cookies[0].Secure)
	})
}

func TestSigned(t *testing.T) {
	m := newManager(t)

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.SetSigned(w, "tok", "session-token")

		got, err := m.GetSigned(requestWithCookies(w), "tok")
		require.NoError(t, err)
		assert.Equal(t, "session-token", got)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.SetSigned(w, "tok", "session-token")

		c := w.Result().Cookies()[0]
		parts := strings.SplitN(c.Value, "|", 2)
		c.Value = "dGFtcGVyZWQ=" + "|" + parts[1]

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(c)

		_, err := m.GetSigned(r, "tok")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("garbage value rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "tok", Value: "no-separator"})

		_, err := m.GetSigned(r, "tok")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("old secret still verifies after rotation", func(t *testing.T) {
		old := newManager(t)
		w := httptest.NewRecorder()
		old.SetSigned(w, "tok", "session-token")

		rotated, err := cookie.New([]string{"brand-new-secret-key-that-is-longer!", testSecret})
		require.NoError(t, err)

		got, err := rotated.GetSigned(requestWithCookies(w), "tok")
		require.NoError(t, err)
		assert.Equal(t, "session-token", got)
	})
}

func TestDelete(t *testing.T) {
	m := newManager(t)

	w := httptest.NewRecorder()
	m.Delete(w, "name")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
