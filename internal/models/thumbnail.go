package models

// ThumbnailCacheRecord представляет одну закэшированную миниатюру.
// Записи write-once, read-many: после вставки blob не меняется,
// перезапись по тому же AssetID обновляет CachedAt/ExpiresAt.
type ThumbnailCacheRecord struct {
	AssetID   string `json:"asset_id"`   // AssetID идентификатор владеющего ресурса (фото)
	Blob      []byte `json:"blob"`       // Blob бинарные данные миниатюры
	CachedAt  int64  `json:"cached_at"`  // CachedAt время вставки, epoch milliseconds (порядок вытеснения)
	ExpiresAt int64  `json:"expires_at"` // ExpiresAt время истечения TTL, epoch milliseconds
	Size      int64  `json:"size"`       // Size размер Blob в байтах
}

// IsExpired сообщает, истек ли TTL записи.
// Запись с ExpiresAt <= now никогда не возвращается как hit.
func (r *ThumbnailCacheRecord) IsExpired(now int64) bool {
	return r.ExpiresAt <= now
}
