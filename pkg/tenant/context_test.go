package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestSelectedContext(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a selection", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithSelected(context.Background(), int64(42))
		id, ok := tenant.SelectedFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("absent without selection", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.SelectedFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("logger extractor reports selection", func(t *testing.T) {
		t.Parallel()

		extract := tenant.LoggerExtractor()

		attr, ok := extract(tenant.WithSelected(context.Background(), "acme"))
		require.True(t, ok)
		assert.Equal(t, "selected_tenant", attr.Key)
		assert.Equal(t, "acme", attr.Value.String())

		_, ok = extract(context.Background())
		assert.False(t, ok)
	})
}
