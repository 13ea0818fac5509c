package access

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tenantguard/pkg/selection"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// DefaultElevatedRole is the role granting access to all tenants unless a
// custom predicate is configured.
const DefaultElevatedRole = "super-admin"

// MembershipSource supplies the set of tenant identifiers a user belongs
// to. Implementations must fail closed: on any lookup failure they return
// an empty set, which the resolver turns into a denial.
type MembershipSource interface {
	TenantIDs(ctx context.Context, userID tenant.ID) []tenant.ID
}

// Resolver produces an access decision per document operation for one
// collection. It is stateless and safe for concurrent use; all I/O happens
// in the configured membership source and delegate rules.
//
// Elevated users bypass membership filtering entirely - their view is
// scoped only by the optional cookie-carried tenant selection. Everyone
// else is restricted to the tenants they are assigned to, and denied
// everything when that set is empty.
type Resolver struct {
	field     string
	elevated  func(*tenant.User) bool
	source    selection.Source
	members   MembershipSource
	delegates Rules
	log       *slog.Logger
}

// NewResolver creates a resolver with the given options. Without options
// it filters on the "tenants" field, treats the "super-admin" role as
// elevated, and reads the selection from the default cookie chain.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		field: "tenants",
		elevated: func(u *tenant.User) bool {
			return u != nil && u.Role == DefaultElevatedRole
		},
		source: selection.Default(selection.DefaultCookieName),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create decides access for document creation.
func (r *Resolver) Create(ctx context.Context, args Args) (Decision, error) {
	return r.resolve(ctx, OperationCreate, args)
}

// Read decides access for document reads.
func (r *Resolver) Read(ctx context.Context, args Args) (Decision, error) {
	return r.resolve(ctx, OperationRead, args)
}

// Update decides access for document updates.
func (r *Resolver) Update(ctx context.Context, args Args) (Decision, error) {
	return r.resolve(ctx, OperationUpdate, args)
}

// Delete decides access for document deletion.
func (r *Resolver) Delete(ctx context.Context, args Args) (Decision, error) {
	return r.resolve(ctx, OperationDelete, args)
}

// Resolve decides access for an arbitrary operation kind.
func (r *Resolver) Resolve(ctx context.Context, op Operation, args Args) (Decision, error) {
	return r.resolve(ctx, op, args)
}

func (r *Resolver) resolve(ctx context.Context, op Operation, args Args) (Decision, error) {
	if r.elevated(args.User) {
		return r.resolveElevated(ctx, op, args)
	}

	ids := r.membershipIDs(ctx, args.User)
	if len(ids) == 0 {
		// Zero memberships deny everything, regardless of any delegate
		// rule. Membership lookup failures surface here as an empty set,
		// so store outages fail closed.
		r.log.DebugContext(ctx, "denying access: no tenant memberships", "operation", string(op))
		return Deny(), nil
	}

	if op == OperationCreate {
		// No candidate document exists at creation time, so a document
		// filter is meaningless. Membership grants creation outright; the
		// assigned tenant is validated by the injected field's options.
		return Allow(), nil
	}

	return r.combine(ctx, op, args, In(r.tenantPath(), ids))
}

func (r *Resolver) resolveElevated(ctx context.Context, op Operation, args Args) (Decision, error) {
	if op == OperationCreate {
		return r.delegateOr(ctx, op, args, Allow())
	}

	selected, ok := r.selected(ctx, args)
	if !ok {
		return r.delegateOr(ctx, op, args, Allow())
	}

	r.log.DebugContext(ctx, "scoping elevated view to selected tenant", "operation", string(op))
	return r.combine(ctx, op, args, Equals(r.tenantPath(), selected))
}

// combine conjoins the resolver's own constraint with a structured
// delegate result. Unconditional delegate outcomes are ignored here: the
// membership constraint already bounds the result set, and a delegate
// boolean carries no document constraint to merge.
func (r *Resolver) combine(ctx context.Context, op Operation, args Args, base Where) (Decision, error) {
	delegate := r.delegates.ForOperation(op)
	if delegate == nil {
		return Restrict(base), nil
	}

	res, err := delegate(ctx, args)
	if err != nil {
		return Deny(), err
	}
	if w, ok := res.Restricted(); ok {
		return Restrict(And(base, w)), nil
	}
	return Restrict(base), nil
}

// delegateOr defers entirely to the collection's own rule when one exists,
// falling back to the given decision otherwise.
func (r *Resolver) delegateOr(ctx context.Context, op Operation, args Args, fallback Decision) (Decision, error) {
	delegate := r.delegates.ForOperation(op)
	if delegate == nil {
		return fallback, nil
	}
	return delegate(ctx, args)
}

// membershipIDs resolves the requester's tenant set. Assignments loaded
// with the user document win; the membership source is consulted only when
// the document carries none, covering hosts that strip relationship depth
// from the request identity.
func (r *Resolver) membershipIDs(ctx context.Context, user *tenant.User) []tenant.ID {
	if user == nil {
		return nil
	}
	if ids := user.TenantIDs(); len(ids) > 0 {
		return ids
	}
	if r.members == nil {
		return nil
	}
	userID, ok := tenant.ExtractID(user.ID)
	if !ok {
		return nil
	}
	return r.members.TenantIDs(ctx, userID)
}

// selected reads the elevated user's tenant selection, preferring a value
// an earlier processing stage already placed in the context over re-parsing
// the request.
func (r *Resolver) selected(ctx context.Context, args Args) (tenant.ID, bool) {
	if id, ok := tenant.SelectedFromContext(ctx); ok {
		return id, true
	}
	if args.Request == nil || r.source == nil {
		return nil, false
	}
	return r.source.Resolve(args.Request)
}

func (r *Resolver) tenantPath() string {
	return r.field + ".tenant"
}

// FilterOptions restricts tenant-relationship field choices: elevated
// users see every tenant, members see their own, anyone else sees none.
func (r *Resolver) FilterOptions(ctx context.Context, args Args) (Decision, error) {
	if r.elevated(args.User) {
		return Allow(), nil
	}
	ids := r.membershipIDs(ctx, args.User)
	if len(ids) == 0 {
		return Deny(), nil
	}
	return Restrict(In("id", ids)), nil
}
