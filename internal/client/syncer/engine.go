// Package syncer реализует offline-first синхронизацию мутаций с сервером:
// немедленная попытка с fallback в durable очередь, периодический drain
// с экспоненциальным backoff и LWW разрешением конфликтов.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	httpclient "github.com/iudanet/platesync/internal/client/api"
	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/conflict"
	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/pkg/api"
)

//go:generate moq -out api_mock.go . MutationAPI

// MutationAPI определяет подмножество HTTP клиента, используемое engine
type MutationAPI interface {
	CreateMeal(ctx context.Context, accessToken string, req api.MutateMealRequest) (*api.MealResponse, error)
	UpdateMeal(ctx context.Context, accessToken, mealID string, req api.MutateMealRequest) (*api.MealResponse, error)
	DeleteMeal(ctx context.Context, accessToken, mealID string, req api.DeleteMealRequest) (*api.MealResponse, error)
}

// Ошибки engine
var (
	// ErrInvalidArgument отсутствует обязательный идентификатор записи
	// для операций update/delete
	ErrInvalidArgument = errors.New("entity id is required for update and delete operations")
)

// Engine orchestrates immediate sync attempts and queue draining.
// Drain не должен вызываться конкурентно с самим собой - вызывающая
// сторона сериализует запуски (один таймер или одно событие
// "connectivity restored").
type Engine struct {
	apiClient MutationAPI
	queue     storage.QueueStorage
	meals     storage.MealStorage
	resolver  conflict.Resolver
	logger    *slog.Logger
	now       func() int64 // epoch milliseconds, подменяется в тестах

	mu    sync.Mutex
	stats Stats
}

// Stats содержит счетчики engine. Состояние принадлежит конкретному
// экземпляру Engine, не процессу.
type Stats struct {
	SuccessCount        int64 // успешно доставленные мутации
	FailureCount        int64 // неудачные попытки (transport/server ошибки)
	ConflictCount       int64 // полученные 409
	CumulativeLatencyMs int64 // суммарная задержка успешных немедленных попыток
}

// DrainResult contains the summary of one drain pass
type DrainResult struct {
	Processed  int // количество обработанных due элементов
	Completed  int // успешно доставлено и удалено из очереди
	Failed     int // оставлено в очереди с увеличенным backoff
	Conflicts  int // конфликтов разрешено через resolver
	ServerWins int // конфликтов, где локальная копия перезаписана серверной
}

// NewEngine creates a new sync engine
func NewEngine(
	apiClient MutationAPI,
	queue storage.QueueStorage,
	meals storage.MealStorage,
	resolver conflict.Resolver,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		apiClient: apiClient,
		queue:     queue,
		meals:     meals,
		resolver:  resolver,
		logger:    logger,
		now:       func() int64 { return time.Now().UnixMilli() },
	}
}

// SyncNow attempts an immediate remote call for a single mutation.
// При transport/server ошибке мутация durable-ставится в очередь и
// исходная ошибка возвращается вызывающей стороне - UI может показать
// pending состояние, данные не теряются. При 409 возвращается конфликт
// без постановки в очередь: разрешение - ответственность drain пути.
// При успехе возвращается каноническая серверная версия записи.
func (e *Engine) SyncNow(ctx context.Context, accessToken string, record *models.MealRecord, opType string) (*models.MealRecord, error) {
	if err := validateOperation(record, opType); err != nil {
		return nil, err
	}

	now := e.now()
	operationID := uuid.New().String()

	serverRecord, err := e.attempt(ctx, accessToken, operationID, opType, record)
	if err == nil {
		e.addSuccess(e.now() - now)
		if err := e.applyServerRecord(ctx, opType, serverRecord); err != nil {
			e.logger.Warn("Failed to apply server record locally", "meal_id", serverRecord.ID, "error", err)
		}
		return serverRecord, nil
	}

	if _, ok := httpclient.AsConflict(err); ok {
		e.addConflict()
		e.logger.Info("Immediate sync rejected with conflict", "meal_id", record.ID, "operation", opType)
		return nil, err
	}

	// Transport/server ошибка: сохраняем мутацию в очередь и отдаем
	// исходную ошибку наверх
	e.addFailure()

	item := &models.SyncQueueItem{
		OperationID:   operationID,
		OperationType: opType,
		EntityID:      record.ID,
		LocalData:     record.Clone(),
		Status:        models.QueueStatusPending,
		RetryCount:    0,
		NextRetryAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if insertErr := e.queue.Insert(ctx, item); insertErr != nil {
		e.logger.Error("Failed to enqueue mutation after transport failure",
			"operation_id", operationID,
			"error", insertErr)
		return nil, fmt.Errorf("failed to enqueue mutation: %w", insertErr)
	}

	e.logger.Info("Mutation enqueued for later sync",
		"operation_id", operationID,
		"operation", opType,
		"meal_id", record.ID)

	return nil, err
}

// Drain processes every queue item with next_retry_at <= now, in
// ascending next_retry_at order (oldest-due-first, чтобы долго ждущие
// элементы не голодали). Ошибки отдельных элементов не прерывают проход:
// они записываются в состояние элемента и счетчики engine.
func (e *Engine) Drain(ctx context.Context, accessToken string, now int64) (*DrainResult, error) {
	items, err := e.queue.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due items: %w", err)
	}

	result := &DrainResult{}

	for _, item := range items {
		result.Processed++
		e.processItem(ctx, accessToken, item, now, result)
	}

	if result.Processed > 0 {
		e.logger.Info("Drain pass completed",
			"processed", result.Processed,
			"completed", result.Completed,
			"failed", result.Failed,
			"conflicts", result.Conflicts)
	}

	return result, nil
}

// processItem обрабатывает один due элемент очереди
func (e *Engine) processItem(ctx context.Context, accessToken string, item *models.SyncQueueItem, now int64, result *DrainResult) {
	// pending/failed -> syncing
	item.Status = models.QueueStatusSyncing
	item.UpdatedAt = now
	if err := e.queue.Update(ctx, item); err != nil {
		e.logger.Error("Failed to mark item as syncing", "operation_id", item.OperationID, "error", err)
		result.Failed++
		return
	}

	serverRecord, err := e.attempt(ctx, accessToken, item.OperationID, item.OperationType, item.LocalData)
	if err == nil {
		e.completeItem(ctx, item, serverRecord, now)
		e.addSuccess(0)
		result.Completed++
		return
	}

	conflictErr, ok := httpclient.AsConflict(err)
	if !ok {
		e.markFailed(ctx, item, now, err)
		e.addFailure()
		result.Failed++
		return
	}

	// Конфликт версий: прогоняем через resolver, слепой retry запрещен
	e.addConflict()
	result.Conflicts++

	resolution := e.resolver.Resolve(item.LocalData, fromAPIMeal(conflictErr.ServerMeal))
	if resolution.Accepted() {
		// Клиентская версия авторитетна: одна повторная попытка,
		// дальше обычный failure/backoff путь
		serverRecord, retryErr := e.attempt(ctx, accessToken, item.OperationID, item.OperationType, item.LocalData)
		if retryErr != nil {
			e.markFailed(ctx, item, now, retryErr)
			e.addFailure()
			result.Failed++
			return
		}
		e.completeItem(ctx, item, serverRecord, now)
		e.addSuccess(0)
		result.Completed++
		return
	}

	// Серверная версия победила: перезаписываем локальную копию
	// и завершаем элемент - пушить больше нечего
	result.ServerWins++
	if err := e.applyServerRecord(ctx, item.OperationType, resolution.Record); err != nil {
		e.logger.Warn("Failed to adopt server record", "meal_id", resolution.Record.ID, "error", err)
	}
	e.completeItem(ctx, item, nil, now)
	result.Completed++
}

// completeItem завершает элемент двухшаговым коммитом: сначала помечаем
// completed, затем удаляем. Упавший между шагами процесс оставит
// completed запись, которую удалит recovery, а не потеряет факт успеха.
func (e *Engine) completeItem(ctx context.Context, item *models.SyncQueueItem, serverRecord *models.MealRecord, now int64) {
	if serverRecord != nil {
		if err := e.applyServerRecord(ctx, item.OperationType, serverRecord); err != nil {
			e.logger.Warn("Failed to apply server record locally", "meal_id", serverRecord.ID, "error", err)
		}
	}

	item.Status = models.QueueStatusCompleted
	item.UpdatedAt = now
	if err := e.queue.Update(ctx, item); err != nil {
		e.logger.Error("Failed to mark item as completed", "operation_id", item.OperationID, "error", err)
	}

	if err := e.queue.Delete(ctx, item.OperationID); err != nil {
		e.logger.Error("Failed to delete completed item", "operation_id", item.OperationID, "error", err)
	}
}

// markFailed переводит элемент в waiting состояние failed с пересчетом
// времени следующей попытки
func (e *Engine) markFailed(ctx context.Context, item *models.SyncQueueItem, now int64, cause error) {
	delay := backoffDelay(item.RetryCount)
	item.RetryCount++
	item.NextRetryAt = now + delay
	item.Status = models.QueueStatusFailed
	item.UpdatedAt = now

	if err := e.queue.Update(ctx, item); err != nil {
		e.logger.Error("Failed to update failed item", "operation_id", item.OperationID, "error", err)
		return
	}

	e.logger.Warn("Queue item sync failed, will retry",
		"operation_id", item.OperationID,
		"retry_count", item.RetryCount,
		"next_retry_at", item.NextRetryAt,
		"error", cause)
}

// Recover resets items stuck in syncing state back to pending.
// Вызывается один раз при старте: элемент в syncing означает, что
// процесс упал посреди drain и исход операции неизвестен. Повторная
// доставка безопасна - сервер дедуплицирует по operation_id.
// Элементы, застрявшие в completed (упали между mark и delete),
// удаляются: completed означает подтвержденный успех.
func (e *Engine) Recover(ctx context.Context) (int, error) {
	completed, err := e.queue.ListByStatus(ctx, models.QueueStatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("failed to list completed items: %w", err)
	}
	for _, item := range completed {
		if err := e.queue.Delete(ctx, item.OperationID); err != nil {
			return 0, fmt.Errorf("failed to delete completed item: %w", err)
		}
	}

	stuck, err := e.queue.ListByStatus(ctx, models.QueueStatusSyncing)
	if err != nil {
		return 0, fmt.Errorf("failed to list syncing items: %w", err)
	}

	now := e.now()
	for _, item := range stuck {
		item.Status = models.QueueStatusPending
		item.NextRetryAt = now
		item.UpdatedAt = now
		if err := e.queue.Update(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to recover item %s: %w", item.OperationID, err)
		}
	}

	if len(stuck) > 0 {
		e.logger.Info("Recovered stuck queue items", "count", len(stuck))
	}

	return len(stuck), nil
}

// PendingCount возвращает количество мутаций, ожидающих синхронизации
func (e *Engine) PendingCount(ctx context.Context) (int, error) {
	return e.queue.PendingCount(ctx)
}

// Stats returns a snapshot of engine counters
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// attempt выполняет одну сетевую попытку для мутации
func (e *Engine) attempt(ctx context.Context, accessToken, operationID, opType string, record *models.MealRecord) (*models.MealRecord, error) {
	var (
		resp *api.MealResponse
		err  error
	)

	switch opType {
	case models.OpTypeCreate:
		resp, err = e.apiClient.CreateMeal(ctx, accessToken, api.MutateMealRequest{
			OperationID: operationID,
			Meal:        toAPIMeal(record),
		})
	case models.OpTypeUpdate:
		resp, err = e.apiClient.UpdateMeal(ctx, accessToken, record.ID, api.MutateMealRequest{
			OperationID: operationID,
			Meal:        toAPIMeal(record),
		})
	case models.OpTypeDelete:
		resp, err = e.apiClient.DeleteMeal(ctx, accessToken, record.ID, api.DeleteMealRequest{
			OperationID: operationID,
			UpdatedAt:   record.UpdatedAt,
		})
	default:
		return nil, fmt.Errorf("unknown operation type: %s", opType)
	}

	if err != nil {
		return nil, err
	}

	return fromAPIMeal(resp.Meal), nil
}

// applyServerRecord обновляет локальный снимок канонической версией
func (e *Engine) applyServerRecord(ctx context.Context, opType string, record *models.MealRecord) error {
	if record == nil {
		return nil
	}
	if opType == models.OpTypeDelete || record.Deleted {
		return e.meals.DeleteMeal(ctx, record.ID)
	}
	return e.meals.SaveMeal(ctx, record)
}

// validateOperation проверяет аргументы мутации
func validateOperation(record *models.MealRecord, opType string) error {
	switch opType {
	case models.OpTypeCreate:
		return nil
	case models.OpTypeUpdate, models.OpTypeDelete:
		if record == nil || record.ID == "" {
			return ErrInvalidArgument
		}
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", opType)
	}
}

func (e *Engine) addSuccess(latencyMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.SuccessCount++
	e.stats.CumulativeLatencyMs += latencyMs
}

func (e *Engine) addFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.FailureCount++
}

func (e *Engine) addConflict() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.ConflictCount++
}
