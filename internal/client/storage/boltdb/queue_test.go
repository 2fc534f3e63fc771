package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

// createTestItem создает тестовый элемент очереди
func createTestItem(operationID string, nextRetryAt int64) *models.SyncQueueItem {
	return &models.SyncQueueItem{
		OperationID:   operationID,
		OperationType: models.OpTypeUpdate,
		EntityID:      "meal-" + operationID,
		LocalData: &models.MealRecord{
			ID:        "meal-" + operationID,
			Name:      "test meal",
			Calories:  450,
			UpdatedAt: 1000,
		},
		Status:      models.QueueStatusPending,
		NextRetryAt: nextRetryAt,
		CreatedAt:   1000,
		UpdatedAt:   1000,
	}
}

func TestStorage_InsertGet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	item := createTestItem("op-1", 0)
	require.NoError(t, store.Insert(ctx, item))

	got, err := store.Get(ctx, "op-1")
	require.NoError(t, err)
	assert.Equal(t, item.OperationID, got.OperationID)
	assert.Equal(t, item.OperationType, got.OperationType)
	assert.Equal(t, models.QueueStatusPending, got.Status)
	require.NotNil(t, got.LocalData)
	assert.Equal(t, "test meal", got.LocalData.Name)
}

func TestStorage_Insert_Duplicate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	item := createTestItem("op-1", 0)
	require.NoError(t, store.Insert(ctx, item))

	// Повторный insert того же operation_id запрещен
	err := store.Insert(ctx, createTestItem("op-1", 500))
	assert.ErrorIs(t, err, storage.ErrDuplicateOperation)
}

func TestStorage_Get_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestStorage_Update(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	item := createTestItem("op-1", 0)
	require.NoError(t, store.Insert(ctx, item))

	item.Status = models.QueueStatusFailed
	item.RetryCount = 3
	item.NextRetryAt = 9000
	require.NoError(t, store.Update(ctx, item))

	got, err := store.Get(ctx, "op-1")
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusFailed, got.Status)
	assert.Equal(t, 3, got.RetryCount)
	assert.Equal(t, int64(9000), got.NextRetryAt)
}

func TestStorage_Update_NotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.Update(context.Background(), createTestItem("missing", 0))
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestStorage_Delete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, createTestItem("op-1", 0)))
	require.NoError(t, store.Delete(ctx, "op-1"))

	_, err := store.Get(ctx, "op-1")
	assert.ErrorIs(t, err, storage.ErrItemNotFound)

	// Удаление отсутствующего элемента - не ошибка
	assert.NoError(t, store.Delete(ctx, "op-1"))
}

func TestStorage_ListDue_OrderAndFilter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Вставляем не по порядку, чтобы проверить сортировку
	require.NoError(t, store.Insert(ctx, createTestItem("op-late", 3000)))
	require.NoError(t, store.Insert(ctx, createTestItem("op-early", 1000)))
	require.NoError(t, store.Insert(ctx, createTestItem("op-mid", 2000)))
	require.NoError(t, store.Insert(ctx, createTestItem("op-future", 10000)))

	due, err := store.ListDue(ctx, 5000)
	require.NoError(t, err)
	require.Len(t, due, 3)

	// Порядок: по возрастанию NextRetryAt
	assert.Equal(t, "op-early", due[0].OperationID)
	assert.Equal(t, "op-mid", due[1].OperationID)
	assert.Equal(t, "op-late", due[2].OperationID)
}

func TestStorage_ListDue_BoundaryInclusive(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, createTestItem("op-1", 5000)))

	// next_retry_at == now считается due
	due, err := store.ListDue(ctx, 5000)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	due, err = store.ListDue(ctx, 4999)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestStorage_ListByStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pending := createTestItem("op-1", 0)
	require.NoError(t, store.Insert(ctx, pending))

	syncing := createTestItem("op-2", 0)
	syncing.Status = models.QueueStatusSyncing
	require.NoError(t, store.Insert(ctx, syncing))

	got, err := store.ListByStatus(ctx, models.QueueStatusSyncing)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "op-2", got[0].OperationID)
}

func TestStorage_PendingCount(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	count, err := store.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.Insert(ctx, createTestItem("op-1", 0)))
	require.NoError(t, store.Insert(ctx, createTestItem("op-2", 0)))

	count, err = store.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
