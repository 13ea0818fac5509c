package membership

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Lookup resolves the set of tenants a user belongs to by reading the
// user's own document from the store and normalizing its assignment
// records.
//
// Lookup degrades instead of failing: any store error yields an empty set.
// Combined with the resolver's deny-on-empty policy this means a store
// outage denies access rather than leaking cross-tenant data.
type Lookup struct {
	store    Store
	users    string
	field    string
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithUsersCollection overrides the collection holding user documents.
func WithUsersCollection(name string) LookupOption {
	return func(l *Lookup) {
		if name != "" {
			l.users = name
		}
	}
}

// WithAssignmentsField overrides the user-document field holding tenant
// assignments.
func WithAssignmentsField(name string) LookupOption {
	return func(l *Lookup) {
		if name != "" {
			l.field = name
		}
	}
}

// WithCache enables caching of resolved membership sets.
func WithCache(cache Cache, ttl time.Duration) LookupOption {
	return func(l *Lookup) {
		l.cache = cache
		if ttl > 0 {
			l.cacheTTL = ttl
		}
	}
}

// WithLookupLogger sets a custom logger. Nil loggers are ignored.
func WithLookupLogger(log *slog.Logger) LookupOption {
	return func(l *Lookup) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLookup creates a membership lookup over the given store. Defaults:
// "users" collection, "tenants" assignments field, no cache.
func NewLookup(store Store, opts ...LookupOption) *Lookup {
	l := &Lookup{
		store:    store,
		users:    "users",
		field:    "tenants",
		cacheTTL: 5 * time.Minute,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TenantIDs returns the ordered tenant identifiers assigned to the user.
// Unresolvable assignment entries are dropped; duplicates are tolerated.
// Any store failure returns an empty set.
func (l *Lookup) TenantIDs(ctx context.Context, userID tenant.ID) []tenant.ID {
	key := cacheKey(userID)
	if l.cache != nil {
		if ids, ok := l.cache.Get(ctx, key); ok {
			return ids
		}
	}

	// Depth 1 materializes assignment records without chasing deeper
	// references the extractor does not need.
	doc, err := l.store.FindByID(ctx, l.users, userID, 1)
	if err != nil {
		l.log.WarnContext(ctx, "membership lookup failed, denying by default", "error", err)
		return nil
	}

	ids := extractAssignments(doc[l.field])

	if l.cache != nil && len(ids) > 0 {
		l.cache.Set(ctx, key, ids, l.cacheTTL)
	}
	return ids
}

// Invalidate drops the cached membership set for a user, if caching is
// enabled. Call it when assignments change.
func (l *Lookup) Invalidate(ctx context.Context, userID tenant.ID) {
	if l.cache != nil {
		l.cache.Delete(ctx, cacheKey(userID))
	}
}

func extractAssignments(raw any) []tenant.ID {
	var ids []tenant.ID
	appendEntry := func(entry any) {
		ref := entry
		switch a := entry.(type) {
		case tenant.Assignment:
			ref = a.Tenant
		case map[string]any:
			if v, ok := a["tenant"]; ok {
				ref = v
			}
		}
		if id, ok := tenant.ExtractID(ref); ok {
			ids = append(ids, id)
		}
	}

	switch entries := raw.(type) {
	case []tenant.Assignment:
		for _, e := range entries {
			appendEntry(e)
		}
	case []map[string]any:
		for _, e := range entries {
			appendEntry(e)
		}
	case []any:
		for _, e := range entries {
			appendEntry(e)
		}
	}
	return ids
}

func cacheKey(userID tenant.ID) string {
	return fmt.Sprint(userID)
}
