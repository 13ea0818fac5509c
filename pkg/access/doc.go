// Package access implements the tenant access-decision logic: a pure
// mapping from the requester's identity, the requested operation, and an
// optional tenant selection to one of three outcomes - allow everything,
// deny everything, or restrict matching documents to a tenant set.
//
// # Decisions
//
// Decision is an explicit tagged value rather than a duck-typed boolean-or-
// filter, so composing a resolver constraint with a collection's own rule
// is total: Restrict values conjoin via And, unconditional values never
// silently widen a filter.
//
//	d := access.Restrict(access.In("tenants.tenant", ids))
//	if w, ok := d.Restricted(); ok {
//		filter := w.BSON() // hand to the query engine
//	}
//
// # Resolution rules
//
// For elevated users (default: role "super-admin") the resolver never
// filters by membership. Reads, updates and deletes honor the cookie-
// carried tenant selection when present; otherwise the collection's own
// rule applies, defaulting to allow. Creation always defers to the
// collection's rule.
//
// For everyone else the resolver collects the requester's resolvable
// tenant assignments. An empty set denies every operation unconditionally,
// which makes membership-store failures fail closed. A non-empty set
// restricts reads, updates and deletes to the assigned tenants; creation
// becomes a plain grant, since no document exists yet to filter.
//
//	resolver := access.NewResolver(
//		access.WithFieldName("tenants"),
//		access.WithDelegates(originalRules),
//		access.WithMembershipSource(lookup),
//	)
//	decision, err := resolver.Read(ctx, access.Args{User: user, Request: req})
//
// The resolver itself never fails; only delegate rules can return errors,
// and those propagate unchanged for the host to handle.
package access
