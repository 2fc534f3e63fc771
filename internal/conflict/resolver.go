// Package conflict реализует разрешение конфликтов между локальной и
// серверной версией одной и той же записи по правилу Last-Write-Wins.
package conflict

import "github.com/iudanet/platesync/internal/models"

// Outcome определяет исход разрешения конфликта
type Outcome string

const (
	// OutcomeAccepted локальная версия побеждает: вызывающая сторона
	// должна (пере)записать ее на сервер
	OutcomeAccepted Outcome = "accepted"
	// OutcomeConflict серверная версия побеждает: вызывающая сторона
	// должна перезаписать свою локальную копию
	OutcomeConflict Outcome = "conflict"
)

// Resolution представляет tagged-результат сравнения двух версий записи.
// Record всегда содержит выигравшую версию.
type Resolution struct {
	Outcome Outcome
	Record  *models.MealRecord
}

// Accepted сообщает, победила ли клиентская версия
func (r Resolution) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

// Resolver определяет стратегию разрешения конфликтов.
// Единственная реализация - LWW; интерфейс оставлен для возможной
// замены на field-level merge без изменения sync engine.
type Resolver interface {
	Resolve(client, server *models.MealRecord) Resolution
}

// LWW реализует whole-record Last-Write-Wins по UpdatedAt.
type LWW struct{}

// NewLWW создает LWW resolver
func NewLWW() *LWW {
	return &LWW{}
}

// Resolve сравнивает клиентскую и серверную версии записи по UpdatedAt
// (epoch milliseconds). Отсутствующий timestamp считается epoch 0 - запись
// без timestamp никогда не выигрывает у записи с timestamp.
// Серверная версия побеждает только при строго большем UpdatedAt;
// равные timestamps разрешаются в пользу клиента.
func (l *LWW) Resolve(client, server *models.MealRecord) Resolution {
	var clientUpdated, serverUpdated int64
	if client != nil {
		clientUpdated = client.UpdatedAt
	}
	if server != nil {
		serverUpdated = server.UpdatedAt
	}

	if serverUpdated > clientUpdated {
		return Resolution{Outcome: OutcomeConflict, Record: server}
	}

	return Resolution{Outcome: OutcomeAccepted, Record: client}
}
