package storage

import (
	"context"

	"github.com/iudanet/platesync/internal/models"
)

// MutationOutcome описывает результат применения идемпотентной мутации
type MutationOutcome int

const (
	// MutationApplied входящая версия записана как каноническая
	MutationApplied MutationOutcome = iota
	// MutationDuplicate operation_id уже применялся, запись не изменена
	MutationDuplicate
	// MutationConflict сохраненная версия строго новее входящей
	MutationConflict
)

// MealStorage defines interface for canonical meal record persistence.
// Мутации идемпотентны по operation_id и разрешаются по LWW: сохраненная
// версия выигрывает только при строго большем updated_at, ничья - в
// пользу входящей версии.
type MealStorage interface {
	// ApplyMutation atomically applies an idempotent LWW mutation.
	// Всегда возвращает каноническую версию записи после вызова:
	// при MutationApplied - входящую, при MutationDuplicate и
	// MutationConflict - сохраненную.
	ApplyMutation(ctx context.Context, operationID string, incoming *models.MealRecord) (MutationOutcome, *models.MealRecord, error)

	// GetMeal retrieves a single meal for a user
	// Returns ErrMealNotFound if record doesn't exist
	GetMeal(ctx context.Context, userID, mealID string) (*models.MealRecord, error)

	// ListMeals returns all non-deleted meals for a user
	ListMeals(ctx context.Context, userID string) ([]*models.MealRecord, error)
}
