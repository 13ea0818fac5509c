package selection

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// MiddlewareOption configures the selection middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// Middleware resolves the tenant selection once per request and places it
// in the request context, where downstream access rules treat it as the
// most authoritative source. Requests without a selection pass through
// unchanged; resolution never rejects a request.
func Middleware(source Source, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if source == nil {
		source = Default(DefaultCookieName)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := source.Resolve(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			cfg.logger.DebugContext(r.Context(), "tenant selection resolved")
			ctx := tenant.WithSelected(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
