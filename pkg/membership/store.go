package membership

import "context"

// FindOptions bounds a collection listing.
type FindOptions struct {
	// Depth controls how many levels of document references are
	// materialized into embedded records. Zero leaves references as bare
	// identifiers.
	Depth int
	// Limit caps the number of returned documents. Zero means the store
	// default.
	Limit int
}

// Store is the read-only document-store surface the plugin consumes.
// Documents are returned as generic maps so the same lookup logic works
// against any backend; identifier fields inside them are normalized with
// tenant.ExtractID at the call site.
type Store interface {
	// FindByID fetches a single document. Returns ErrNotFound when no
	// document matches.
	FindByID(ctx context.Context, collection string, id any, depth int) (map[string]any, error)

	// Find lists documents from a collection.
	Find(ctx context.Context, collection string, opts FindOptions) ([]map[string]any, error)
}
