// Package membership resolves which tenants a user belongs to by reading
// the user's document from an external store and normalizing its
// assignment records.
//
// The Store interface is the minimal read-only surface the plugin needs
// from a document store: fetch one document, list a collection. Two
// implementations ship with the package - MongoStore over a mongo
// database handle, and PostgresStore over a pgx pool backed by the schema
// Migrate installs. Both return documents as plain maps so the lookup
// logic stays backend-agnostic.
//
// Lookup is deliberately infallible: any store error degrades to an empty
// membership set. The access resolver denies everything on an empty set,
// so failures deny access instead of leaking cross-tenant data.
//
//	store := membership.NewMongoStore(db)
//	lookup := membership.NewLookup(store,
//		membership.WithCache(membership.NewInMemoryCache(), 5*time.Minute),
//	)
//	ids := lookup.TenantIDs(ctx, userID)
//
// A shared RedisCache is available for multi-process deployments; the
// in-memory cache is the default for single binaries. A stale membership
// read is acceptable - there is no compensating-write path - so cache TTLs
// trade freshness for store load.
package membership
