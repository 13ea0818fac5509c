package selection_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/selection"
)

func writtenCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetter(t *testing.T) {
	t.Parallel()

	t.Run("writes the selection with browser-persistent defaults", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		selection.Setter{}.Set(rec, int64(7))

		c := writtenCookie(t, rec)
		assert.Equal(t, selection.DefaultCookieName, c.Name)
		assert.Equal(t, "7", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, int(selection.DefaultMaxAge/time.Second), c.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("clear resets to the all sentinel", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		selection.Setter{}.Clear(rec)

		c := writtenCookie(t, rec)
		assert.Equal(t, selection.AllTenants, c.Value)
	})

	t.Run("honors custom attributes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		selection.Setter{
			Name:   "my-tenant",
			Path:   "/admin",
			MaxAge: time.Hour,
			Secure: true,
		}.Set(rec, "acme")

		c := writtenCookie(t, rec)
		assert.Equal(t, "my-tenant", c.Name)
		assert.Equal(t, "acme", c.Value)
		assert.Equal(t, "/admin", c.Path)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.Secure)
	})

	t.Run("round-trips through the sources", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		selection.Setter{}.Set(rec, int64(42))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(writtenCookie(t, rec))

		id, ok := selection.Default(selection.DefaultCookieName).Resolve(req)
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})
}
