package api

import (
	"errors"
	"fmt"

	"github.com/iudanet/platesync/pkg/api"
)

// ConflictError возвращается, когда сервер ответил 409: его версия записи
// новее клиентской. ServerMeal содержит каноническую серверную версию
// для передачи в conflict resolver.
type ConflictError struct {
	ServerMeal api.Meal
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: server has newer version of meal %s", e.ServerMeal.ID)
}

// TransportError оборачивает сетевые и серверные ошибки (любой не-2xx,
// кроме 409). Такие ошибки считаются retryable: мутация ставится в очередь
// и повторяется при следующем drain.
type TransportError struct {
	Err        error
	StatusCode int // 0 если до сервера не дошли
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport failure (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsConflict извлекает ConflictError из цепочки ошибок
func AsConflict(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}

// IsTransport сообщает, является ли ошибка retryable transport failure
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
