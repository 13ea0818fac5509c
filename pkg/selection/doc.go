// Package selection reads and writes the per-browser tenant selection: the
// cookie that lets an elevated user scope their view to one tenant.
//
// Hosts expose cookies in different shapes depending on which layer the
// request passed through, so resolution is a fallback chain of Sources
// tried in order:
//
//  1. ContextSource - a value an earlier stage placed in the context
//  2. CookieSource - the parsed cookie jar
//  3. RawHeaderSource - a manual scan of the Cookie header
//
// HeaderFuncSource covers request wrappers that hide headers behind an
// accessor. Default(name) assembles the standard chain; custom chains are
// built with NewComposite.
//
// Cookie values follow a small convention: the literal "all" means no
// selection, values that round-trip as base-10 integers become numeric
// identifiers, everything else is a string identifier. Parsing is total -
// malformed requests yield an absent selection, never an error.
//
//	source := selection.Default(selection.DefaultCookieName)
//	router.Use(selection.Middleware(source))
//
// Setter writes the companion cookie (path "/", 30-day expiry) for hosts
// that set the selection server-side.
package selection
