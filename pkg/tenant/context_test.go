package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

func TestTenantContext(t *testing.T) {
	t.Parallel()

	t.Run("round trips through context", func(t *testing.T) {
		t.Parallel()

		record := newTestTenant("acme")
		ctx := tenant.WithTenant(context.Background(), record)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, record, got)
	})

	t.Run("absent tenant reports false", func(t *testing.T) {
		t.Parallel()

		got, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil tenant reports false", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)

		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("id helper", func(t *testing.T) {
		t.Parallel()

		record := newTestTenant("acme")
		ctx := tenant.WithTenant(context.Background(), record)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, record.ID, id)

		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := tenant.LoggerExtractor()

	record := newTestTenant("acme")
	ctx := tenant.WithTenant(context.Background(), record)

	attr, ok := extract(ctx)
	require.True(t, ok)
	assert.Equal(t, "tenant_id", attr.Key)
	assert.Equal(t, record.ID, attr.Value.String())

	_, ok = extract(context.Background())
	assert.False(t, ok)
}
