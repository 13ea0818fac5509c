package selection

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// DefaultMaxAge is how long a tenant selection persists in the browser.
const DefaultMaxAge = 30 * 24 * time.Hour

// Setter writes the selection cookie on responses. The zero value writes
// the default cookie: DefaultCookieName, path "/", 30-day expiry, Lax.
type Setter struct {
	Name   string
	Path   string
	Domain string
	MaxAge time.Duration
	Secure bool
}

// Set persists the tenant selection in the response.
func (s Setter) Set(w http.ResponseWriter, id tenant.ID) {
	s.write(w, FormatValue(id))
}

// Clear resets the selection to the "all tenants" sentinel. The cookie is
// kept rather than deleted so the UI dropdown stays in sync across tabs.
func (s Setter) Clear(w http.ResponseWriter) {
	s.write(w, AllTenants)
}

func (s Setter) write(w http.ResponseWriter, value string) {
	name := s.Name
	if name == "" {
		name = DefaultCookieName
	}
	path := s.Path
	if path == "" {
		path = "/"
	}
	maxAge := s.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   s.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
