package access

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Args carries the per-request inputs an access rule operates on. User is
// the authenticated requester, nil for anonymous requests. Request is the
// inbound HTTP request when the host exposes it; rules must tolerate its
// absence.
type Args struct {
	User    *tenant.User
	Request *http.Request
}

// Rule is the access-rule calling convention shared with collection hosts.
// A rule may perform I/O and fail; failures propagate to the host, which
// owns turning them into request errors. Access decisions are never
// retried.
type Rule func(ctx context.Context, args Args) (Decision, error)

// Static adapts a fixed decision to the Rule convention. Useful for
// collections whose original access rule is a plain boolean.
func Static(d Decision) Rule {
	return func(context.Context, Args) (Decision, error) {
		return d, nil
	}
}

// Operation enumerates the document operation kinds a collection exposes.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Rules holds one optional delegate rule per operation kind, mirroring a
// collection's own access configuration.
type Rules struct {
	Create Rule
	Read   Rule
	Update Rule
	Delete Rule
}

// ForOperation returns the delegate for the given operation, nil when the
// collection does not define one.
func (r Rules) ForOperation(op Operation) Rule {
	switch op {
	case OperationCreate:
		return r.Create
	case OperationRead:
		return r.Read
	case OperationUpdate:
		return r.Update
	case OperationDelete:
		return r.Delete
	}
	return nil
}
