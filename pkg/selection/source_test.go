package selection_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/selection"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   string
		want  tenant.ID
		found bool
	}{
		{name: "numeric value", raw: "42", want: int64(42), found: true},
		{name: "string value", raw: "tenant-abc", want: "tenant-abc", found: true},
		{name: "all sentinel", raw: "all", found: false},
		{name: "empty value", raw: "", found: false},
		{name: "whitespace only", raw: "   ", found: false},
		{name: "quoted numeric", raw: `"42"`, want: int64(42), found: true},
		{name: "leading zero stays a string", raw: "042", want: "042", found: true},
		{name: "negative number", raw: "-3", want: int64(-3), found: true},
		{name: "mixed alphanumeric", raw: "12ab", want: "12ab", found: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, ok := selection.ParseValue(tc.raw)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, id)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", selection.FormatValue(int64(42)))
	assert.Equal(t, "tenant-abc", selection.FormatValue("tenant-abc"))
	assert.Equal(t, selection.AllTenants, selection.FormatValue(nil))
}

func TestSources(t *testing.T) {
	t.Parallel()

	t.Run("cookie source reads the parsed jar", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: selection.DefaultCookieName, Value: "7"})

		id, ok := selection.CookieSource{}.Resolve(req)
		require.True(t, ok)
		assert.Equal(t, int64(7), id)
	})

	t.Run("raw header source tolerates malformed segments", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Cookie", "bad segment;; payload-selected-tenant=7 ;other=x")

		id, ok := selection.RawHeaderSource{}.Resolve(req)
		require.True(t, ok)
		assert.Equal(t, int64(7), id)
	})

	t.Run("context source reads upstream selection", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(tenant.WithSelected(req.Context(), "acme"))

		id, ok := selection.ContextSource{}.Resolve(req)
		require.True(t, ok)
		assert.Equal(t, "acme", id)
	})

	t.Run("header func source covers wrapped requests", func(t *testing.T) {
		t.Parallel()

		src := selection.HeaderFuncSource{
			Get: func(name string) string {
				if name == "Cookie" {
					return "payload-selected-tenant=12; other=x"
				}
				return ""
			},
		}

		id, ok := src.Resolve(nil)
		require.True(t, ok)
		assert.Equal(t, int64(12), id)
	})

	t.Run("all sentinel is absent from every source", func(t *testing.T) {
		t.Parallel()

		jarReq := httptest.NewRequest("GET", "/", nil)
		jarReq.AddCookie(&http.Cookie{Name: selection.DefaultCookieName, Value: "all"})

		rawReq := httptest.NewRequest("GET", "/", nil)
		rawReq.Header.Set("Cookie", "payload-selected-tenant=all")

		sources := map[string]struct {
			src selection.Source
			req *http.Request
		}{
			"cookie jar": {src: selection.CookieSource{}, req: jarReq},
			"raw header": {src: selection.RawHeaderSource{}, req: rawReq},
			"header func": {src: selection.HeaderFuncSource{
				Get: func(string) string { return "payload-selected-tenant=all" },
			}, req: nil},
		}

		for name, tc := range sources {
			_, ok := tc.src.Resolve(tc.req)
			assert.False(t, ok, "source %s", name)
		}
	})

	t.Run("malformed requests yield absent without panicking", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)

		_, ok := selection.Default(selection.DefaultCookieName).Resolve(req)
		assert.False(t, ok)

		_, ok = selection.HeaderFuncSource{}.Resolve(nil)
		assert.False(t, ok)
	})

	t.Run("composite returns the first hit", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: selection.DefaultCookieName, Value: "12"})
		req = req.WithContext(tenant.WithSelected(req.Context(), int64(99)))

		id, ok := selection.Default(selection.DefaultCookieName).Resolve(req)
		require.True(t, ok)
		assert.Equal(t, int64(99), id, "context selection is the most authoritative")
	})

	t.Run("custom cookie name", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "my-tenant", Value: "5"})

		id, ok := selection.Default("my-tenant").Resolve(req)
		require.True(t, ok)
		assert.Equal(t, int64(5), id)

		_, ok = selection.Default(selection.DefaultCookieName).Resolve(req)
		assert.False(t, ok)
	})
}
