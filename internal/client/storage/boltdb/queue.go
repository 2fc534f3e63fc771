package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

// Insert stores a new queue item keyed by operation_id
// Returns ErrDuplicateOperation if a live item already exists
func (s *Storage) Insert(ctx context.Context, item *models.SyncQueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal queue item: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		// Инвариант: ровно один живой элемент на operation_id
		if bucket.Get([]byte(item.OperationID)) != nil {
			return storage.ErrDuplicateOperation
		}

		if err := bucket.Put([]byte(item.OperationID), data); err != nil {
			return fmt.Errorf("failed to save queue item: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// Get retrieves a queue item by operation_id
func (s *Storage) Get(ctx context.Context, operationID string) (*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrItemNotFound
		}

		data := bucket.Get([]byte(operationID))
		if data == nil {
			return storage.ErrItemNotFound
		}

		item = &models.SyncQueueItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal queue item: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return item, nil
}

// Update overwrites an existing queue item
func (s *Storage) Update(ctx context.Context, item *models.SyncQueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal queue item: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrItemNotFound
		}

		if bucket.Get([]byte(item.OperationID)) == nil {
			return storage.ErrItemNotFound
		}

		if err := bucket.Put([]byte(item.OperationID), data); err != nil {
			return fmt.Errorf("failed to update queue item: %w", err)
		}

		return nil
	})
}

// Delete removes a queue item; missing item is not an error
func (s *Storage) Delete(ctx context.Context, operationID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		if err := bucket.Delete([]byte(operationID)); err != nil {
			return fmt.Errorf("failed to delete queue item: %w", err)
		}

		return nil
	})
}

// ListDue returns items with next_retry_at <= now,
// ordered by ascending next_retry_at (oldest-due-first)
func (s *Storage) ListDue(ctx context.Context, now int64) ([]*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var item models.SyncQueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal queue item: %w", err)
			}

			if item.IsDue(now) {
				items = append(items, &item)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list due items: %w", err)
	}

	// Сортируем по возрастанию NextRetryAt - самые давние first,
	// чтобы долго ждущие элементы не голодали
	sort.Slice(items, func(i, j int) bool {
		return items[i].NextRetryAt < items[j].NextRetryAt
	})

	return items, nil
}

// ListByStatus returns all items with the given status
func (s *Storage) ListByStatus(ctx context.Context, status string) ([]*models.SyncQueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.SyncQueueItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var item models.SyncQueueItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal queue item: %w", err)
			}

			if item.Status == status {
				items = append(items, &item)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list items by status: %w", err)
	}

	return items, nil
}

// PendingCount returns the number of live queue items
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count queue items: %w", err)
	}

	return count, nil
}
