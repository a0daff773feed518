package tenant_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

func newTestTenant(identifier string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Name:       identifier,
		Active:     true,
	}
}

func TestMemoryCacheLazy(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves within ttl", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeLazy,
			TTL:  time.Hour,
		})
		defer cache.Close()

		record := newTestTenant("acme")
		cache.Set(context.Background(), "acme", record)

		got, ok := cache.Get(context.Background(), "acme")
		require.True(t, ok)
		assert.Equal(t, record, got)
	})

	t.Run("evicts expired entry on read", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeLazy,
			TTL:  10 * time.Millisecond,
		})
		defer cache.Close()

		cache.Set(context.Background(), "acme", newTestTenant("acme"))
		require.Equal(t, 1, cache.Len())

		time.Sleep(20 * time.Millisecond)

		got, ok := cache.Get(context.Background(), "acme")
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("sweeper removes expired entries without reads", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode:          tenant.CacheModeLazy,
			TTL:           10 * time.Millisecond,
			SweepInterval: 20 * time.Millisecond,
		})
		defer cache.Close()

		cache.Set(context.Background(), "acme", newTestTenant("acme"))

		assert.Eventually(t, func() bool {
			return cache.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("overwrites existing entries", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeLazy,
			TTL:  time.Hour,
		})
		defer cache.Close()

		first := newTestTenant("acme")
		second := newTestTenant("acme")
		cache.Set(context.Background(), "acme", first)
		cache.Set(context.Background(), "acme", second)

		got, ok := cache.Get(context.Background(), "acme")
		require.True(t, ok)
		assert.Equal(t, second, got)
	})
}

func TestMemoryCachePreload(t *testing.T) {
	t.Parallel()

	t.Run("entries never expire", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModePreload,
			TTL:  time.Nanosecond,
		})
		defer cache.Close()

		record := newTestTenant("acme")
		cache.Set(context.Background(), "acme", record)

		time.Sleep(5 * time.Millisecond)

		got, ok := cache.Get(context.Background(), "acme")
		require.True(t, ok)
		assert.Equal(t, record, got)
	})
}

func TestMemoryCacheDisabled(t *testing.T) {
	t.Parallel()

	t.Run("set followed by get always misses", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeDisabled,
			TTL:  time.Hour,
		})
		defer cache.Close()

		cache.Set(context.Background(), "acme", newTestTenant("acme"))

		got, ok := cache.Get(context.Background(), "acme")
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, 0, cache.Len())
	})
}

func TestMemoryCacheDeleteClear(t *testing.T) {
	t.Parallel()

	cache := tenant.NewMemoryCache(tenant.CacheConfig{
		Mode: tenant.CacheModeLazy,
		TTL:  time.Hour,
	})
	defer cache.Close()

	cache.Set(context.Background(), "acme", newTestTenant("acme"))
	cache.Set(context.Background(), "globex", newTestTenant("globex"))
	require.Equal(t, 2, cache.Len())

	cache.Delete(context.Background(), "acme")
	assert.Equal(t, 1, cache.Len())

	cache.Clear(context.Background())
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCacheClose(t *testing.T) {
	t.Parallel()

	t.Run("idempotent with sweeper running", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeLazy,
			TTL:  time.Hour,
		})

		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})

	t.Run("safe when sweeper never started", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModeDisabled,
		})

		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})

	t.Run("clears entries", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: tenant.CacheModePreload,
		})
		cache.Set(context.Background(), "acme", newTestTenant("acme"))

		require.NoError(t, cache.Close())
		assert.Equal(t, 0, cache.Len())
	})
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := tenant.NewMemoryCache(tenant.CacheConfig{
		Mode:          tenant.CacheModeLazy,
		TTL:           5 * time.Millisecond,
		SweepInterval: time.Millisecond,
	})
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("tenant-%d", j%10)
				cache.Set(context.Background(), key, newTestTenant(key))
				cache.Get(context.Background(), key)
				if n%2 == 0 {
					cache.Delete(context.Background(), key)
				}
			}
		}(i)
	}
	wg.Wait()
}
