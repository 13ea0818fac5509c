package access

import (
	"log/slog"

	"github.com/dmitrymomot/tenantguard/pkg/selection"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithFieldName overrides the collection field holding tenant assignments.
func WithFieldName(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.field = name
		}
	}
}

// WithElevated replaces the predicate deciding which users bypass tenant
// filtering. Nil predicates are ignored so the resolver always has one.
func WithElevated(fn func(*tenant.User) bool) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.elevated = fn
		}
	}
}

// WithSelectionSource replaces the cookie chain used to read the elevated
// user's tenant selection.
func WithSelectionSource(src selection.Source) Option {
	return func(r *Resolver) {
		if src != nil {
			r.source = src
		}
	}
}

// WithMembershipSource sets the lookup consulted when the requester's
// document carries no assignment records.
func WithMembershipSource(src MembershipSource) Option {
	return func(r *Resolver) {
		r.members = src
	}
}

// WithDelegates installs the collection's original access rules. They are
// evaluated per operation and conjoined with the tenant constraint when
// they produce one.
func WithDelegates(rules Rules) Option {
	return func(r *Resolver) {
		r.delegates = rules
	}
}

// WithLogger sets a custom logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}
