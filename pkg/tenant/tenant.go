package tenant

import (
	"math"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ID is a canonical tenant identifier. After normalization through
// ExtractID it holds an int64, a string, a uuid.UUID or a bson.ObjectID,
// all of which are comparable and safe to use as filter values.
type ID any

// Tenant represents an isolated customer partition. The plugin only ever
// reads tenant identifiers; tenant content is owned by the document store.
type Tenant struct {
	ID     ID     `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Slug   string `json:"slug,omitempty" bson:"slug,omitempty"`
	Domain string `json:"domain,omitempty" bson:"domain,omitempty"`
}

// Assignment links a user to a tenant with an optional tenant-scoped role.
// The Tenant field holds either a bare identifier or an embedded tenant
// record, depending on how deep the document was loaded.
type Assignment struct {
	Tenant any    `json:"tenant" bson:"tenant"`
	Role   string `json:"role,omitempty" bson:"role,omitempty"`
}

// User is the requester identity the access resolver operates on.
type User struct {
	ID      ID           `json:"id" bson:"_id"`
	Role    string       `json:"role" bson:"role"`
	Tenants []Assignment `json:"tenants,omitempty" bson:"tenants,omitempty"`
}

// TenantIDs returns the canonical identifiers of all resolvable
// assignments. Unresolvable entries are dropped, duplicates are kept.
func (u *User) TenantIDs() []ID {
	if u == nil || len(u.Tenants) == 0 {
		return nil
	}
	ids := make([]ID, 0, len(u.Tenants))
	for _, a := range u.Tenants {
		if id, ok := ExtractID(a.Tenant); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// idFields are the record keys recognized as identifiers, in priority order.
var idFields = []string{"id", "_id", "ID"}

// ExtractID normalizes an arbitrary tenant reference to its canonical
// identifier. It accepts raw identifiers (numeric or string), identifier
// types used by the supported stores (uuid.UUID, bson.ObjectID), and
// records carrying an identifier under one of the recognized field names.
// Returns false for anything else, including nil and empty records.
// Pure and total: never panics, performs no I/O.
func ExtractID(v any) (ID, bool) {
	if v == nil {
		return nil, false
	}

	switch t := v.(type) {
	case string:
		if t == "" {
			return nil, false
		}
		return t, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return nil, false
		}
		return int64(t), true
	case float32:
		return floatID(float64(t))
	case float64:
		// JSON decoding surfaces numeric identifiers as float64.
		return floatID(t)
	case uuid.UUID:
		if t == uuid.Nil {
			return nil, false
		}
		return t, true
	case bson.ObjectID:
		if t.IsZero() {
			return nil, false
		}
		return t, true
	case Tenant:
		return ExtractID(t.ID)
	case *Tenant:
		if t == nil {
			return nil, false
		}
		return ExtractID(t.ID)
	case map[string]any:
		for _, field := range idFields {
			if raw, ok := t[field]; ok {
				return ExtractID(raw)
			}
		}
		return nil, false
	case bson.M:
		return ExtractID(map[string]any(t))
	case bson.D:
		for _, field := range idFields {
			for _, e := range t {
				if e.Key == field {
					return ExtractID(e.Value)
				}
			}
		}
		return nil, false
	}

	return structID(v)
}

func floatID(f float64) (ID, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return int64(f), true
}

// structID covers store-specific record types decoded into structs rather
// than maps. Field names are matched against the same priority list as map
// keys, with bson/json tags checked for the lowercase variants Go field
// naming cannot express.
func structID(v any) (ID, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for _, field := range idFields {
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Name == field || tagName(f) == field {
				return ExtractID(rv.Field(i).Interface())
			}
		}
	}
	return nil, false
}

func tagName(f reflect.StructField) string {
	for _, tag := range []string{"bson", "json"} {
		if v, ok := f.Tag.Lookup(tag); ok {
			if name, _, _ := strings.Cut(v, ","); name != "" && name != "-" {
				return name
			}
		}
	}
	return ""
}
