package access

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Operator identifies a condition's comparison kind.
type Operator string

const (
	// OpEquals matches documents whose field equals a single value.
	OpEquals Operator = "equals"
	// OpIn matches documents whose field equals any value in a set.
	OpIn Operator = "in"
)

// Condition is a single declarative document constraint.
type Condition struct {
	Field  string
	Op     Operator
	Value  tenant.ID
	Values []tenant.ID
}

// Where is a conjunction of conditions: a document matches when every
// condition holds. The zero value matches everything, which is why
// decisions never carry an empty Where - an unrestricted outcome is
// expressed as Allow, never as Restrict with no conditions.
type Where []Condition

// Equals builds a single-condition constraint on field == value.
func Equals(field string, value tenant.ID) Where {
	return Where{{Field: field, Op: OpEquals, Value: value}}
}

// In builds a single-condition constraint matching field against a set of values.
func In(field string, values []tenant.ID) Where {
	return Where{{Field: field, Op: OpIn, Values: values}}
}

// And composes constraints by conjunction. Empty parts are skipped, so the
// composition is total: And(w) == w and And() matches everything.
func And(parts ...Where) Where {
	var out Where
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// BSON renders the constraint as a filter document for the mongo query
// engine. Conditions on distinct fields merge into one document; repeated
// fields fall back to an explicit $and so no condition is silently dropped.
func (w Where) BSON() bson.M {
	if len(w) == 0 {
		return bson.M{}
	}

	merged := bson.M{}
	collision := false
	for _, c := range w {
		if _, exists := merged[c.Field]; exists {
			collision = true
			break
		}
		merged[c.Field] = c.bsonValue()
	}
	if !collision {
		return merged
	}

	clauses := make([]bson.M, 0, len(w))
	for _, c := range w {
		clauses = append(clauses, bson.M{c.Field: c.bsonValue()})
	}
	return bson.M{"$and": clauses}
}

func (c Condition) bsonValue() any {
	if c.Op == OpIn {
		return bson.M{"$in": c.Values}
	}
	return c.Value
}

// MarshalJSON renders the constraint in the wire shape collection hosts
// expect: {"field": {"equals": v}} for a single condition, conditions
// wrapped under "and" otherwise.
func (w Where) MarshalJSON() ([]byte, error) {
	if len(w) == 1 {
		return json.Marshal(w[0].jsonValue())
	}
	clauses := make([]map[string]any, 0, len(w))
	for _, c := range w {
		clauses = append(clauses, c.jsonValue())
	}
	return json.Marshal(map[string]any{"and": clauses})
}

func (c Condition) jsonValue() map[string]any {
	if c.Op == OpIn {
		return map[string]any{c.Field: map[string]any{string(OpIn): c.Values}}
	}
	return map[string]any{c.Field: map[string]any{string(OpEquals): c.Value}}
}
