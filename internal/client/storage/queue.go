package storage

import (
	"context"

	"github.com/iudanet/platesync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines interface for the durable sync queue on client.
// Инвариант: на один operation_id существует не больше одного живого
// элемента; завершенные элементы удаляются, а не помечаются.
type QueueStorage interface {
	// Insert stores a new queue item
	// Returns ErrDuplicateOperation if a live item with the same
	// operation_id already exists
	Insert(ctx context.Context, item *models.SyncQueueItem) error

	// Get retrieves a queue item by operation_id
	// Returns ErrItemNotFound if item doesn't exist
	Get(ctx context.Context, operationID string) (*models.SyncQueueItem, error)

	// Update overwrites an existing queue item
	// Returns ErrItemNotFound if item doesn't exist
	Update(ctx context.Context, item *models.SyncQueueItem) error

	// Delete removes a queue item by operation_id
	// Deleting a missing item is not an error
	Delete(ctx context.Context, operationID string) error

	// ListDue returns items with next_retry_at <= now,
	// ordered by ascending next_retry_at (oldest-due-first)
	ListDue(ctx context.Context, now int64) ([]*models.SyncQueueItem, error)

	// ListByStatus returns all items with the given status
	// Used by the startup recovery pass
	ListByStatus(ctx context.Context, status string) ([]*models.SyncQueueItem, error)

	// PendingCount returns the number of live queue items
	PendingCount(ctx context.Context) (int, error)
}
