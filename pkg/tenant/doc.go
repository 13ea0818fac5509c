// Package tenant defines the value types shared across the plugin: tenants,
// tenant assignments, the requester identity, and the canonical tenant
// identifier.
//
// The central utility is ExtractID, which normalizes the many shapes a
// tenant reference can take in loaded documents - a bare numeric or string
// identifier, a store-native identifier type, or an embedded record - into
// a single comparable value. Every other package builds on this
// normalization: the access resolver when collecting membership sets, the
// selection package when parsing cookie values, and the membership lookup
// when walking assignment arrays.
//
// # Identifier normalization
//
//	id, ok := tenant.ExtractID(7)                          // int64(7)
//	id, ok = tenant.ExtractID("acme")                      // "acme"
//	id, ok = tenant.ExtractID(map[string]any{"id": 7})     // int64(7)
//	id, ok = tenant.ExtractID(nil)                         // absent
//
// Extraction is idempotent: feeding a canonical identifier back in returns
// it unchanged. Records are checked for "id", "_id" and "ID" keys in that
// priority order.
//
// # Request-scoped selection
//
// WithSelected and SelectedFromContext carry the per-request tenant
// selection (the elevated user's "viewing as" override) through the
// request context, following the same private-key pattern used for all
// request-scoped values in this module.
package tenant
