package models

// Статусы элемента очереди синхронизации.
// Жизненный цикл: pending -> syncing -> completed (терминальный, запись
// удаляется) или pending -> syncing -> failed -> pending (после истечения
// NextRetryAt элемент снова становится due).
const (
	QueueStatusPending   = "pending"
	QueueStatusSyncing   = "syncing"
	QueueStatusCompleted = "completed"
	QueueStatusFailed    = "failed"
)

// Типы мутаций.
const (
	OpTypeCreate = "create"
	OpTypeUpdate = "update"
	OpTypeDelete = "delete"
)

// SyncQueueItem представляет одну отложенную мутацию в локальной очереди.
// OperationID генерируется один раз при постановке в очередь и передается
// серверу при каждой повторной попытке - сервер дедуплицирует по нему.
type SyncQueueItem struct {
	OperationID   string      `json:"operation_id"`   // OperationID уникальный идентификатор операции (UUID, ключ идемпотентности)
	OperationType string      `json:"operation_type"` // OperationType тип мутации: create, update, delete
	EntityID      string      `json:"entity_id"`      // EntityID идентификатор целевой записи (может отсутствовать только для create)
	LocalData     *MealRecord `json:"local_data"`     // LocalData полный локальный снимок записи на момент постановки в очередь
	Status        string      `json:"status"`         // Status текущий статус: pending, syncing, completed, failed
	RetryCount    int         `json:"retry_count"`    // RetryCount количество неудачных попыток drain
	NextRetryAt   int64       `json:"next_retry_at"`  // NextRetryAt epoch milliseconds, элемент due когда NextRetryAt <= now
	CreatedAt     int64       `json:"created_at"`     // CreatedAt время постановки в очередь, epoch milliseconds
	UpdatedAt     int64       `json:"updated_at"`     // UpdatedAt время последнего изменения элемента, epoch milliseconds
}

// IsDue сообщает, пора ли обрабатывать элемент. Due только элементы
// в waiting статусах: syncing принадлежит идущему drain, completed
// ждет удаления.
func (i *SyncQueueItem) IsDue(now int64) bool {
	if i.Status != QueueStatusPending && i.Status != QueueStatusFailed {
		return false
	}
	return i.NextRetryAt <= now
}

// Clone создает глубокую копию элемента очереди
func (i *SyncQueueItem) Clone() *SyncQueueItem {
	if i == nil {
		return nil
	}
	clone := *i
	clone.LocalData = i.LocalData.Clone()
	return &clone
}
