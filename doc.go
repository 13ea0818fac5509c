// Package tenantguard adds tenant-scoped data isolation to collection-based
// content backends.
//
// The plugin is a configuration-time decorator: given a list of host
// collection configurations, it injects a tenant-assignments relationship
// field and replaces each collection's four access rules (create, read,
// update, delete) with tenant-aware ones. The original rules are preserved
// as delegates and conjoined with the tenant constraint when they produce
// a document filter of their own.
//
// # Decision model
//
// Every request yields one of three outcomes: allow everything, deny
// everything, or restrict matching documents to a tenant set. Elevated
// users (by default, role "super-admin") bypass membership filtering and
// can scope their own view with a browser cookie; everyone else is limited
// to the tenants they are assigned to, and denied outright when they have
// none. Membership-store failures degrade to an empty set and therefore
// deny - the plugin fails closed.
//
// # Usage
//
//	plugin, err := tenantguard.New(tenantguard.Config{
//		Collections: []tenantguard.CollectionConfig{
//			{Slug: "pages"},
//			{Slug: "posts", Field: "orgs"},
//		},
//		Membership: lookup, // optional membership.Lookup
//	})
//	if err != nil {
//		return err
//	}
//	collections = plugin.Apply(collections)
//
// The subpackages are usable on their own: pkg/access holds the decision
// logic, pkg/selection the cookie handling, pkg/membership the store
// lookups, and pkg/tenant the shared value types.
package tenantguard
