package storage

import (
	"context"

	"github.com/iudanet/platesync/internal/models"
)

// ThumbnailStorage defines interface for persisted thumbnail records.
// Политика вытеснения и учет hit/miss живут уровнем выше, в thumbcache;
// storage отвечает только за атомарный доступ по ключу и обход записей.
type ThumbnailStorage interface {
	// SaveThumbnail stores or overwrites a thumbnail record
	SaveThumbnail(ctx context.Context, rec *models.ThumbnailCacheRecord) error

	// GetThumbnail retrieves a thumbnail record by asset_id
	// Returns ErrThumbnailNotFound if record doesn't exist
	GetThumbnail(ctx context.Context, assetID string) (*models.ThumbnailCacheRecord, error)

	// ListThumbnails returns all thumbnail records
	ListThumbnails(ctx context.Context) ([]*models.ThumbnailCacheRecord, error)

	// DeleteThumbnail removes a thumbnail record
	// Deleting a missing record is not an error
	DeleteThumbnail(ctx context.Context, assetID string) error
}
