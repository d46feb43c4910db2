package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sbbtt/next-mall/internal/cache"
	"github.com/sbbtt/next-mall/internal/config"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 5 * time.Minute,
		CatalogTTL: time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	snapshot := []models.Product{{ID: 1, Name: "Modern Velvet Sofa", Price: 489000, Category: "furniture", InStock: true}}
	jsonData, err := json.Marshal(snapshot)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result []models.Product

		mock.ExpectGet(cache.CatalogKey).SetVal(string(jsonData))

		found, err := redisCache.Get(ctx, cache.CatalogKey, &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, snapshot, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result []models.Product

		mock.ExpectGet(cache.CatalogKey).SetErr(redis.Nil)

		found, err := redisCache.Get(ctx, cache.CatalogKey, &result)

		require.NoError(t, err, "a cache miss is not an error")
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result []models.Product

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(cache.CatalogKey).SetErr(expectedErr)

		found, err := redisCache.Get(ctx, cache.CatalogKey, &result)

		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()

	t.Run("Explicit TTL", func(t *testing.T) {
		redisCache, mock := setup(t)

		snapshot := []models.Product{{ID: 2, Name: "Ceramic Vase Collection", Price: 62000, Category: "decor"}}
		jsonData, err := json.Marshal(snapshot)
		require.NoError(t, err)

		mock.ExpectSet(cache.CatalogKey, jsonData, time.Minute).SetVal("OK")

		err = redisCache.Set(ctx, cache.CatalogKey, snapshot, time.Minute)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero TTL Uses Default", func(t *testing.T) {
		redisCache, mock := setup(t)

		jsonData, err := json.Marshal("value")
		require.NoError(t, err)

		mock.ExpectSet("test:key", jsonData, 5*time.Minute).SetVal("OK")

		err = redisCache.Set(ctx, "test:key", "value", 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectDel(cache.CatalogKey).SetVal(1)

		err := redisCache.Delete(ctx, cache.CatalogKey)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure", func(t *testing.T) {
		redisCache, mock := setup(t)

		expectedErr := errors.New("redis down")

		mock.ExpectDel(cache.CatalogKey).SetErr(expectedErr)

		err := redisCache.Delete(ctx, cache.CatalogKey)

		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
