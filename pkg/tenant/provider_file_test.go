package tenant_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

const fixtureYAML = `
- id: t1
  identifier: acme.app.com
  name: Acme
  is_active: true
  config:
    app:
      name: Acme
    visibility:
      app:
        name: public
- id: t2
  name: Orphan
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileProvider(t *testing.T) {
	t.Parallel()

	t.Run("serves fixtures by identifier", func(t *testing.T) {
		t.Parallel()

		provider, err := tenant.NewFileProvider(writeFixture(t, fixtureYAML))
		require.NoError(t, err)

		got, err := provider.GetByIdentifier(context.Background(), "acme.app.com")
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)

		public, err := got.Config.PublicValues()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"app": map[string]any{"name": "Acme"}}, public)
	})

	t.Run("identifier-less records keyed by id", func(t *testing.T) {
		t.Parallel()

		provider, err := tenant.NewFileProvider(writeFixture(t, fixtureYAML))
		require.NoError(t, err)

		got, err := provider.GetByIdentifier(context.Background(), "t2")
		require.NoError(t, err)
		assert.Equal(t, "Orphan", got.Name)
	})

	t.Run("unknown identifier is not found", func(t *testing.T) {
		t.Parallel()

		provider, err := tenant.NewFileProvider(writeFixture(t, fixtureYAML))
		require.NoError(t, err)

		_, err = provider.GetByIdentifier(context.Background(), "missing")
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("lists all fixtures", func(t *testing.T) {
		t.Parallel()

		provider, err := tenant.NewFileProvider(writeFixture(t, fixtureYAML))
		require.NoError(t, err)

		all, err := provider.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewFileProvider(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewFileProvider(writeFixture(t, "{not yaml"))
		require.Error(t, err)
	})
}
