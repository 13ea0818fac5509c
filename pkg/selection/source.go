package selection

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// DefaultCookieName is the cookie carrying the tenant selection. The name
// is shared with the admin UI, which writes the cookie client-side.
const DefaultCookieName = "payload-selected-tenant"

// Source extracts the tenant selection from an inbound request.
// Implementations never fail: a malformed or absent value yields false.
type Source interface {
	Resolve(r *http.Request) (tenant.ID, bool)
}

// SourceFunc is an adapter to allow ordinary functions as Sources.
type SourceFunc func(r *http.Request) (tenant.ID, bool)

// Resolve calls the function.
func (f SourceFunc) Resolve(r *http.Request) (tenant.ID, bool) {
	return f(r)
}

// ContextSource reads a selection an earlier processing stage already
// placed in the request context. It is the most authoritative source: a
// value set upstream is trusted as-is.
type ContextSource struct{}

// Resolve returns the context-held selection.
func (ContextSource) Resolve(r *http.Request) (tenant.ID, bool) {
	return tenant.SelectedFromContext(r.Context())
}

// CookieSource reads the selection from the parsed cookie jar.
type CookieSource struct {
	Name string
}

// Resolve returns the selection from the named cookie.
func (s CookieSource) Resolve(r *http.Request) (tenant.ID, bool) {
	c, err := r.Cookie(s.cookieName())
	if err != nil || c == nil {
		return nil, false
	}
	return ParseValue(c.Value)
}

func (s CookieSource) cookieName() string {
	if s.Name == "" {
		return DefaultCookieName
	}
	return s.Name
}

// RawHeaderSource scans the raw Cookie header itself. It tolerates
// segments the stdlib parser rejects, which matters when the selection
// cookie travels alongside cookies written by other stacks with laxer
// encoding rules.
type RawHeaderSource struct {
	Name string
}

// Resolve splits the Cookie header on semicolons and returns the first
// segment matching the configured name.
func (s RawHeaderSource) Resolve(r *http.Request) (tenant.ID, bool) {
	return fromRawCookies(r.Header.Get("Cookie"), s.cookieName())
}

func (s RawHeaderSource) cookieName() string {
	if s.Name == "" {
		return DefaultCookieName
	}
	return s.Name
}

// HeaderFuncSource adapts request wrappers that expose headers through an
// accessor instead of an http.Header, such as gateway or serverless
// request shims. The getter receives the canonical header name.
type HeaderFuncSource struct {
	Name string
	Get  func(name string) string
}

// Resolve applies the raw-header scan to the accessor's Cookie value.
func (s HeaderFuncSource) Resolve(*http.Request) (tenant.ID, bool) {
	if s.Get == nil {
		return nil, false
	}
	name := s.Name
	if name == "" {
		name = DefaultCookieName
	}
	return fromRawCookies(s.Get("Cookie"), name)
}

func fromRawCookies(header, name string) (tenant.ID, bool) {
	if header == "" {
		return nil, false
	}
	for _, segment := range strings.Split(header, ";") {
		segment = strings.TrimSpace(segment)
		if rest, ok := strings.CutPrefix(segment, name+"="); ok {
			return ParseValue(rest)
		}
	}
	return nil, false
}

// Composite tries each source in order and returns the first hit. The
// conventional order is context first, then the parsed cookie jar, then
// the raw header scan.
type Composite struct {
	Sources []Source
}

// NewComposite creates a composite source.
func NewComposite(sources ...Source) *Composite {
	return &Composite{Sources: sources}
}

// Resolve returns the first source's selection, absent if none match.
func (c *Composite) Resolve(r *http.Request) (tenant.ID, bool) {
	for _, src := range c.Sources {
		if id, ok := src.Resolve(r); ok {
			return id, true
		}
	}
	return nil, false
}

// Default returns the standard resolution chain for the given cookie name.
func Default(name string) Source {
	return NewComposite(
		ContextSource{},
		CookieSource{Name: name},
		RawHeaderSource{Name: name},
	)
}
