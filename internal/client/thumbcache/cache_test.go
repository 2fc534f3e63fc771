package thumbcache

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/platesync/internal/client/storage/boltdb"
)

const testNow int64 = 1_700_000_000_000

func newTestCache(t *testing.T, cfg Config) *Cache {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cache, err := New(context.Background(), store, cfg, logger)
	require.NoError(t, err)
	cache.now = func() int64 { return testNow }

	return cache
}

func blobOfSize(n int) []byte {
	return bytes.Repeat([]byte{0xAB}, n)
}

func TestCache_PutGet(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	blob := blobOfSize(40 * 1024)
	require.NoError(t, cache.Put(ctx, "p1", blob, time.Second))

	got, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, blob, got)
	assert.Equal(t, int64(40*1024), cache.Size())
}

func TestCache_GetMiss(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())

	got, ok, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(0), stats.Hits)
}

// Сценарий: put с ttl=1000ms, немедленный get - hit; после сдвига
// времени за TTL - miss, и суммарный размер уменьшается на размер blob.
func TestCache_TTLExpiry(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(40*1024), 1000*time.Millisecond))

	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(40*1024), cache.Size())

	// Сдвигаем время за TTL
	cache.now = func() int64 { return testNow + 1001 }

	_, ok, err = cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), cache.Size())

	// Повторный get после вытеснения - обычный miss, не ошибка
	_, ok, err = cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ExpiryBoundary(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(100), 1000*time.Millisecond))

	// ExpiresAt <= now считается протухшим
	cache.now = func() int64 { return testNow + 1000 }

	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SizeLimitExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxItemBytes = 1024
	cache := newTestCache(t, cfg)
	ctx := context.Background()

	err := cache.Put(ctx, "big", blobOfSize(2048), time.Minute)
	assert.ErrorIs(t, err, ErrSizeLimitExceeded)

	// Ничего не вставлено даже частично
	_, ok, getErr := cache.Get(ctx, "big")
	require.NoError(t, getErr)
	assert.False(t, ok)
	assert.Equal(t, int64(0), cache.Size())
}

// Сценарий: capacity 100KB, три blob по 40KB в порядке a, b, c.
// Вставка c вытесняет a (самый старый CachedAt), остаются b и c.
func TestCache_CapacityEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CapacityBytes = 100 * 1024
	cache := newTestCache(t, cfg)
	ctx := context.Background()

	clock := testNow
	cache.now = func() int64 { return clock }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Put(ctx, id, blobOfSize(40*1024), time.Hour))
		clock += 10 // различимые CachedAt
	}

	_, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest record must be evicted")

	_, ok, err = cache.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = cache.Get(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, int64(80*1024), cache.Size())
	assert.LessOrEqual(t, cache.Size(), cfg.CapacityBytes)
}

func TestCache_OverwriteRefreshes(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(1000), 1000*time.Millisecond))

	// Перезапись тем же ключом: размер учитывается один раз,
	// TTL отсчитывается заново
	cache.now = func() int64 { return testNow + 900 }
	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(2000), 1000*time.Millisecond))
	assert.Equal(t, int64(2000), cache.Size())

	// Старый TTL истек бы на testNow+1000; новый действует до testNow+1900
	cache.now = func() int64 { return testNow + 1800 }
	got, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got, 2000)
}

func TestCache_OverwriteDoesNotEvictSelf(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CapacityBytes = 100 * 1024
	cache := newTestCache(t, cfg)
	ctx := context.Background()

	clock := testNow
	cache.now = func() int64 { return clock }

	require.NoError(t, cache.Put(ctx, "a", blobOfSize(60*1024), time.Hour))
	clock += 10
	require.NoError(t, cache.Put(ctx, "b", blobOfSize(30*1024), time.Hour))
	clock += 10

	// Перезапись a большим blob: место старой версии a освобождается,
	// вытеснять a ради самой себя не нужно
	require.NoError(t, cache.Put(ctx, "a", blobOfSize(70*1024), time.Hour))

	_, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(70*1024), cache.Size())

	// b вытеснен ради headroom
	_, ok, err = cache.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(500), time.Minute))
	require.NoError(t, cache.Delete(ctx, "p1"))
	assert.Equal(t, int64(0), cache.Size())

	// Удаление отсутствующей записи не ошибка
	require.NoError(t, cache.Delete(ctx, "p1"))
}

func TestCache_Stats(t *testing.T) {
	cache := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	// Пустой кэш: rate 0, unhealthy
	stats := cache.Stats()
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, float64(0), stats.HitRate)
	assert.False(t, stats.Healthy)

	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(100), time.Minute))

	// 4 hit, 1 miss -> rate 0.8, healthy при target 0.8
	for i := 0; i < 4; i++ {
		_, ok, err := cache.Get(ctx, "p1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, _, err := cache.Get(ctx, "absent")
	require.NoError(t, err)

	stats = cache.Stats()
	assert.Equal(t, int64(4), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(5), stats.Total)
	assert.InDelta(t, 0.8, stats.HitRate, 1e-9)
	assert.True(t, stats.Healthy)
}

func TestCache_RestoresSizeFromStorage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cache, err := New(ctx, store, DefaultConfig(), logger)
	require.NoError(t, err)
	cache.now = func() int64 { return testNow }
	require.NoError(t, cache.Put(ctx, "p1", blobOfSize(1234), time.Hour))
	require.NoError(t, store.Close())

	// Новый экземпляр поверх того же файла восстанавливает размер
	store, err = boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	reopened, err := New(ctx, store, DefaultConfig(), logger)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), reopened.Size())
}
