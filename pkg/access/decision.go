package access

import "encoding/json"

// Kind enumerates the three possible access outcomes.
type Kind int

const (
	// KindAllow grants unrestricted access.
	KindAllow Kind = iota
	// KindDeny refuses access to every document.
	KindDeny
	// KindRestrict grants access to documents matching a constraint.
	KindRestrict
)

// Decision is the per-request access outcome: unrestricted, denied, or
// restricted to documents matching a Where constraint. The explicit tag
// makes delegate-rule composition total instead of inferred from runtime
// value shapes.
type Decision struct {
	kind  Kind
	where Where
}

// Allow returns an unrestricted grant.
func Allow() Decision { return Decision{kind: KindAllow} }

// Deny returns an unconditional refusal.
func Deny() Decision { return Decision{kind: KindDeny} }

// Restrict returns a grant limited to documents matching w. An empty
// constraint would match everything, so it degrades to Deny rather than
// silently widening access.
func Restrict(w Where) Decision {
	if len(w) == 0 {
		return Deny()
	}
	return Decision{kind: KindRestrict, where: w}
}

// Kind reports the decision's outcome tag.
func (d Decision) Kind() Kind { return d.kind }

// Allowed reports whether access is unrestricted.
func (d Decision) Allowed() bool { return d.kind == KindAllow }

// Denied reports whether access is refused outright.
func (d Decision) Denied() bool { return d.kind == KindDeny }

// Restricted returns the document constraint and true when the decision
// is a filter grant.
func (d Decision) Restricted() (Where, bool) {
	if d.kind != KindRestrict {
		return nil, false
	}
	return d.where, true
}

// MarshalJSON renders the decision in the shape collection hosts consume:
// plain booleans for the unconditional outcomes, the constraint document
// for filter grants.
func (d Decision) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case KindAllow:
		return json.Marshal(true)
	case KindDeny:
		return json.Marshal(false)
	default:
		return json.Marshal(d.where)
	}
}
