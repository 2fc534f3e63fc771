package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

// SaveThumbnail stores or overwrites a thumbnail record keyed by asset_id
func (s *Storage) SaveThumbnail(ctx context.Context, rec *models.ThumbnailCacheRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal thumbnail record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketThumbs)
		if bucket == nil {
			return fmt.Errorf("thumbnails bucket not found")
		}

		if err := bucket.Put([]byte(rec.AssetID), data); err != nil {
			return fmt.Errorf("failed to save thumbnail record: %w", err)
		}

		return nil
	})
}

// GetThumbnail retrieves a thumbnail record by asset_id
func (s *Storage) GetThumbnail(ctx context.Context, assetID string) (*models.ThumbnailCacheRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var rec *models.ThumbnailCacheRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketThumbs)
		if bucket == nil {
			return storage.ErrThumbnailNotFound
		}

		data := bucket.Get([]byte(assetID))
		if data == nil {
			return storage.ErrThumbnailNotFound
		}

		rec = &models.ThumbnailCacheRecord{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal thumbnail record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListThumbnails returns all thumbnail records
func (s *Storage) ListThumbnails(ctx context.Context) ([]*models.ThumbnailCacheRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var recs []*models.ThumbnailCacheRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketThumbs)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var rec models.ThumbnailCacheRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal thumbnail record: %w", err)
			}
			recs = append(recs, &rec)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list thumbnail records: %w", err)
	}

	return recs, nil
}

// DeleteThumbnail removes a thumbnail record; missing record is not an error
func (s *Storage) DeleteThumbnail(ctx context.Context, assetID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketThumbs)
		if bucket == nil {
			return nil
		}

		if err := bucket.Delete([]byte(assetID)); err != nil {
			return fmt.Errorf("failed to delete thumbnail record: %w", err)
		}

		return nil
	})
}
