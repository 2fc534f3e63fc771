// Package thumbcache реализует capacity- и TTL-ограниченный локальный
// кэш бинарных миниатюр поверх durable storage. Вытеснение идет в порядке
// вставки (по возрастанию CachedAt), не по последнему доступу: записи
// write-once, read-many, и recency создания достаточно хорошо коррелирует
// с полезностью, а insertion-order не требует учета порядка доступа.
package thumbcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

// ErrSizeLimitExceeded blob превышает per-item лимит размера.
// Не retryable: повторная попытка с тем же blob обречена.
var ErrSizeLimitExceeded = errors.New("blob exceeds per-item size limit")

// Значения по умолчанию для Config
const (
	DefaultMaxItemBytes  int64 = 256 * 1024
	DefaultCapacityBytes int64 = 10 * 1024 * 1024
	DefaultTTL                 = 24 * time.Hour
	DefaultTargetHitRate       = 0.8
)

// Config задает лимиты кэша. Это конфигурация окружения, не часть
// алгоритма: значения подбираются под устройство, алгоритм неизменен.
type Config struct {
	MaxItemBytes  int64         // per-item потолок размера blob в байтах
	CapacityBytes int64         // суммарный потолок размера всех живых записей
	TTL           time.Duration // TTL по умолчанию для Put с ttl <= 0
	TargetHitRate float64       // целевой hit rate для health сигнала
}

// DefaultConfig returns the default cache limits
func DefaultConfig() Config {
	return Config{
		MaxItemBytes:  DefaultMaxItemBytes,
		CapacityBytes: DefaultCapacityBytes,
		TTL:           DefaultTTL,
		TargetHitRate: DefaultTargetHitRate,
	}
}

// Stats содержит счетчики кэша. Состояние принадлежит экземпляру
// Cache, не процессу.
type Stats struct {
	Hits    int64
	Misses  int64
	Total   int64
	HitRate float64 // 0 при Total == 0
	Healthy bool    // HitRate >= TargetHitRate; операционный сигнал, не ошибка
}

// Cache is a bounded TTL cache for thumbnail blobs.
// Суммарный размер живых записей никогда не превышает CapacityBytes
// после завершения любого Put.
type Cache struct {
	store  storage.ThumbnailStorage
	cfg    Config
	logger *slog.Logger
	now    func() int64 // epoch milliseconds, подменяется в тестах

	mu        sync.Mutex
	hits      int64
	misses    int64
	totalSize int64 // поддерживается инкрементально, инициализируется из store
}

// New creates a cache over the given storage, restoring the aggregate
// size from the records already persisted.
func New(ctx context.Context, store storage.ThumbnailStorage, cfg Config, logger *slog.Logger) (*Cache, error) {
	if cfg.MaxItemBytes <= 0 {
		cfg.MaxItemBytes = DefaultMaxItemBytes
	}
	if cfg.CapacityBytes <= 0 {
		cfg.CapacityBytes = DefaultCapacityBytes
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TargetHitRate <= 0 {
		cfg.TargetHitRate = DefaultTargetHitRate
	}

	records, err := store.ListThumbnails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list thumbnails: %w", err)
	}

	var total int64
	for _, rec := range records {
		total += rec.Size
	}

	return &Cache{
		store:     store,
		cfg:       cfg,
		logger:    logger,
		now:       func() int64 { return time.Now().UnixMilli() },
		totalSize: total,
	}, nil
}

// Get returns the cached blob for assetID, or ok=false on miss.
// Протухшая запись вытесняется как side effect и считается промахом:
// запись с истекшим TTL никогда не возвращается как hit.
func (c *Cache) Get(ctx context.Context, assetID string) ([]byte, bool, error) {
	rec, err := c.store.GetThumbnail(ctx, assetID)
	if errors.Is(err, storage.ErrThumbnailNotFound) {
		c.addMiss()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get thumbnail: %w", err)
	}

	if rec.IsExpired(c.now()) {
		// Вытесняем протухшую запись; промах для вызывающей стороны
		if err := c.store.DeleteThumbnail(ctx, assetID); err != nil {
			return nil, false, fmt.Errorf("failed to evict expired thumbnail: %w", err)
		}
		c.mu.Lock()
		c.totalSize -= rec.Size
		c.misses++
		c.mu.Unlock()

		c.logger.Debug("Evicted expired thumbnail", "asset_id", assetID, "size", rec.Size)
		return nil, false, nil
	}

	c.addHit()
	return rec.Blob, true, nil
}

// Put inserts or overwrites the thumbnail for assetID. При нехватке
// места вытесняет записи по возрастанию CachedAt, пока не освободится
// достаточно. ttl <= 0 означает TTL по умолчанию из Config.
func (c *Cache) Put(ctx context.Context, assetID string, blob []byte, ttl time.Duration) error {
	size := int64(len(blob))
	if size > c.cfg.MaxItemBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrSizeLimitExceeded, size, c.cfg.MaxItemBytes)
	}
	if ttl <= 0 {
		ttl = c.cfg.TTL
	}

	// Перезапись по тому же ключу освобождает место старой версии
	var oldSize int64
	existing, err := c.store.GetThumbnail(ctx, assetID)
	switch {
	case err == nil:
		oldSize = existing.Size
	case errors.Is(err, storage.ErrThumbnailNotFound):
	default:
		return fmt.Errorf("failed to check existing thumbnail: %w", err)
	}

	c.mu.Lock()
	prospective := c.totalSize - oldSize + size
	c.mu.Unlock()

	if prospective > c.cfg.CapacityBytes {
		if err := c.evictOldest(ctx, assetID, prospective-c.cfg.CapacityBytes); err != nil {
			return err
		}
	}

	now := c.now()
	rec := &models.ThumbnailCacheRecord{
		AssetID:   assetID,
		Blob:      blob,
		CachedAt:  now,
		ExpiresAt: now + ttl.Milliseconds(),
		Size:      size,
	}
	if err := c.store.SaveThumbnail(ctx, rec); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}

	c.mu.Lock()
	c.totalSize += size - oldSize
	c.mu.Unlock()

	return nil
}

// Delete removes the thumbnail for assetID; missing record is not an error
func (c *Cache) Delete(ctx context.Context, assetID string) error {
	rec, err := c.store.GetThumbnail(ctx, assetID)
	if errors.Is(err, storage.ErrThumbnailNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get thumbnail: %w", err)
	}

	if err := c.store.DeleteThumbnail(ctx, assetID); err != nil {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}

	c.mu.Lock()
	c.totalSize -= rec.Size
	c.mu.Unlock()

	return nil
}

// Size returns the aggregate size of live records in bytes
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSize
}

// Stats returns a snapshot of cache counters
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	stats := Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Total:  total,
	}
	if total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	stats.Healthy = stats.HitRate >= c.cfg.TargetHitRate

	return stats
}

// evictOldest вытесняет записи по возрастанию CachedAt, пока не
// освободится need байт. Запись с ключом skipAssetID не трогаем -
// она сейчас перезаписывается и уже учтена в prospective размере.
func (c *Cache) evictOldest(ctx context.Context, skipAssetID string, need int64) error {
	records, err := c.store.ListThumbnails(ctx)
	if err != nil {
		return fmt.Errorf("failed to list thumbnails: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CachedAt < records[j].CachedAt
	})

	var freed int64
	for _, rec := range records {
		if freed >= need {
			break
		}
		if rec.AssetID == skipAssetID {
			continue
		}

		if err := c.store.DeleteThumbnail(ctx, rec.AssetID); err != nil {
			return fmt.Errorf("failed to evict thumbnail: %w", err)
		}

		freed += rec.Size
		c.mu.Lock()
		c.totalSize -= rec.Size
		c.mu.Unlock()

		c.logger.Debug("Evicted thumbnail for capacity", "asset_id", rec.AssetID, "size", rec.Size)
	}

	return nil
}

func (c *Cache) addHit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func (c *Cache) addMiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
}
