package tenant

import (
	"context"
	"fmt"
	"log/slog"
)

// selectedKey is a private type to prevent collisions with other context keys.
type selectedKey struct{}

// WithSelected stores the tenant selection for the current request in the
// context. The selection is the "currently viewing as tenant X" override
// used by elevated users; it is not the requester's own membership.
func WithSelected(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, selectedKey{}, id)
}

// SelectedFromContext retrieves the tenant selection from the context.
// Returns nil, false if no selection was made for this request.
func SelectedFromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(selectedKey{}).(ID)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

// LoggerExtractor returns a logger context extractor that annotates log
// records with the selected tenant, when one is present.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := SelectedFromContext(ctx); ok {
			return slog.String("selected_tenant", fmt.Sprint(id)), true
		}
		return slog.Attr{}, false
	}
}
