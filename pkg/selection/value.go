package selection

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// AllTenants is the sentinel cookie value meaning "no selection": the
// elevated user is viewing across every tenant.
const AllTenants = "all"

// ParseValue normalizes a raw cookie value into a tenant identifier.
// The "all" sentinel and empty values yield absent. Values that round-trip
// as base-10 integers become int64 so they compare equal to numeric
// document identifiers; everything else stays a string. Malformed input
// never raises - the worst outcome is an absent selection.
func ParseValue(raw string) (tenant.ID, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" || raw == AllTenants {
		return nil, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && strconv.FormatInt(n, 10) == raw {
		return n, true
	}
	return raw, true
}

// FormatValue renders an identifier as a cookie value. The inverse of
// ParseValue for the identifier forms the plugin produces.
func FormatValue(id tenant.ID) string {
	switch v := id.(type) {
	case nil:
		return AllTenants
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		// uuid.UUID and bson.ObjectID both render via their Stringer.
		if s, ok := v.(interface{ String() string }); ok {
			return s.String()
		}
		return ""
	}
}
