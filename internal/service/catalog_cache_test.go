package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megawarez/internal/cache"
	dom "megawarez/internal/domain"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

func newCachedCatalog(t *testing.T) (*Catalog, *repo.MemoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := repo.NewMemoryStore()
	return NewCatalog(store, cache.NewCatalogCache(rdb, time.Minute), logging.Nop()), store, mr
}

func categoryNames(list []dom.Category) []string {
	return names(list, func(c dom.Category) string { return c.Name })
}

func TestCatalogCache_ListIsServedFromRedis(t *testing.T) {
	catalog, store, mr := newCachedCatalog(t)
	ctx := context.Background()

	games, err := catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)

	list, err := catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Games"}, categoryNames(list))
	assert.True(t, mr.Exists(cache.ListKey(cache.KindCategory)))

	// A write that bypasses the service is invisible until invalidation.
	_, err = store.Categories().Rename(ctx, games.ID, "Apps")
	require.NoError(t, err)
	list, err = catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Games"}, categoryNames(list))
}

func TestCatalogCache_WritesInvalidate(t *testing.T) {
	catalog, _, mr := newCachedCatalog(t)
	ctx := context.Background()

	games, err := catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	warm := func() {
		t.Helper()
		_, err := catalog.Categories.List(ctx)
		require.NoError(t, err)
		_, err = catalog.Categories.Search(ctx, "am")
		require.NoError(t, err)
		_, err = catalog.Products.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, mr.Keys())
	}

	warm()
	_, err = catalog.Categories.Rename(ctx, games.ID, "Apps")
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
	list, err := catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apps"}, categoryNames(list))

	warm()
	_, err = catalog.Categories.Create(ctx, "Music")
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
	list, err = catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apps", "Music"}, categoryNames(list))

	warm()
	_, _, err = catalog.Categories.Delete(ctx, games.ID)
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
	list, err = catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music"}, categoryNames(list))
}

func TestCatalogCache_FailingRedisFallsBackToStorage(t *testing.T) {
	catalog, _, mr := newCachedCatalog(t)
	ctx := context.Background()

	_, err := catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)

	mr.SetError("ERR cache unavailable")

	list, err := catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Games"}, categoryNames(list))

	_, err = catalog.Categories.Create(ctx, "Music")
	require.NoError(t, err)
	list, err = catalog.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Games", "Music"}, categoryNames(list))

	found, err := catalog.Categories.Search(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, []string{"Music"}, categoryNames(found))
}
