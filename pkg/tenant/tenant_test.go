package tenant_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestExtractID(t *testing.T) {
	t.Parallel()

	t.Run("canonical identifiers pass through unchanged", func(t *testing.T) {
		t.Parallel()

		id, ok := tenant.ExtractID(int64(5))
		require.True(t, ok)
		assert.Equal(t, int64(5), id)

		id, ok = tenant.ExtractID("tenant-abc")
		require.True(t, ok)
		assert.Equal(t, "tenant-abc", id)
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		first, ok := tenant.ExtractID(map[string]any{"id": 5})
		require.True(t, ok)

		second, ok := tenant.ExtractID(first)
		require.True(t, ok)
		assert.Equal(t, first, second)
	})

	t.Run("normalizes numeric kinds to int64", func(t *testing.T) {
		t.Parallel()

		for _, v := range []any{5, int32(5), uint(5), uint64(5), float64(5)} {
			id, ok := tenant.ExtractID(v)
			require.True(t, ok, "value %T(%v)", v, v)
			assert.Equal(t, int64(5), id)
		}
	})

	t.Run("rejects non-integral floats", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.ExtractID(5.5)
		assert.False(t, ok)
	})

	t.Run("recognizes id fields in priority order", func(t *testing.T) {
		t.Parallel()

		for _, m := range []map[string]any{
			{"id": 5},
			{"_id": 5},
			{"ID": 5},
		} {
			id, ok := tenant.ExtractID(m)
			require.True(t, ok, "map %v", m)
			assert.Equal(t, int64(5), id)
		}

		id, ok := tenant.ExtractID(map[string]any{"id": 1, "_id": 2})
		require.True(t, ok)
		assert.Equal(t, int64(1), id, "id must win over _id")
	})

	t.Run("absent for unrecognized shapes", func(t *testing.T) {
		t.Parallel()

		for _, v := range []any{nil, map[string]any{}, "", []int{1}, true, map[string]any{"name": "acme"}} {
			_, ok := tenant.ExtractID(v)
			assert.False(t, ok, "value %T(%v)", v, v)
		}
	})

	t.Run("handles store-native identifier types", func(t *testing.T) {
		t.Parallel()

		u := uuid.New()
		id, ok := tenant.ExtractID(u)
		require.True(t, ok)
		assert.Equal(t, u, id)

		_, ok = tenant.ExtractID(uuid.Nil)
		assert.False(t, ok)

		oid := bson.NewObjectID()
		id, ok = tenant.ExtractID(oid)
		require.True(t, ok)
		assert.Equal(t, oid, id)

		_, ok = tenant.ExtractID(bson.ObjectID{})
		assert.False(t, ok)
	})

	t.Run("unwraps embedded tenant records", func(t *testing.T) {
		t.Parallel()

		id, ok := tenant.ExtractID(tenant.Tenant{ID: "acme", Name: "Acme"})
		require.True(t, ok)
		assert.Equal(t, "acme", id)

		id, ok = tenant.ExtractID(&tenant.Tenant{ID: int64(3)})
		require.True(t, ok)
		assert.Equal(t, int64(3), id)

		var nilTenant *tenant.Tenant
		_, ok = tenant.ExtractID(nilTenant)
		assert.False(t, ok)
	})

	t.Run("handles bson document shapes", func(t *testing.T) {
		t.Parallel()

		id, ok := tenant.ExtractID(bson.M{"_id": "t1"})
		require.True(t, ok)
		assert.Equal(t, "t1", id)

		id, ok = tenant.ExtractID(bson.D{{Key: "id", Value: 7}})
		require.True(t, ok)
		assert.Equal(t, int64(7), id)
	})

	t.Run("reads tagged struct fields", func(t *testing.T) {
		t.Parallel()

		type record struct {
			Identifier string `json:"id"`
		}
		id, ok := tenant.ExtractID(record{Identifier: "rec-1"})
		require.True(t, ok)
		assert.Equal(t, "rec-1", id)
	})
}

func TestUserTenantIDs(t *testing.T) {
	t.Parallel()

	t.Run("collects resolvable assignments", func(t *testing.T) {
		t.Parallel()

		user := &tenant.User{
			ID:   "u1",
			Role: "tenant-user",
			Tenants: []tenant.Assignment{
				{Tenant: 7},
				{Tenant: map[string]any{"id": 9}, Role: "admin"},
				{Tenant: nil},
				{Tenant: "t-acme"},
			},
		}

		assert.Equal(t, []tenant.ID{int64(7), int64(9), "t-acme"}, user.TenantIDs())
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		t.Parallel()

		user := &tenant.User{Tenants: []tenant.Assignment{{Tenant: 7}, {Tenant: 7}}}
		assert.Len(t, user.TenantIDs(), 2)
	})

	t.Run("nil user has no tenants", func(t *testing.T) {
		t.Parallel()

		var user *tenant.User
		assert.Empty(t, user.TenantIDs())
	})
}
