package storage

import (
	"context"

	"github.com/iudanet/platesync/internal/models"
)

//go:generate moq -out meals_mock.go . MealStorage

// MealStorage defines interface for the local meal snapshots on client.
// Снимки перезаписываются каноническими версиями с сервера при успешной
// синхронизации и при проигрыше конфликта (server wins).
type MealStorage interface {
	// SaveMeal stores or overwrites a local meal record
	SaveMeal(ctx context.Context, meal *models.MealRecord) error

	// GetMeal retrieves a local meal record by id
	// Returns ErrMealNotFound if record doesn't exist
	GetMeal(ctx context.Context, id string) (*models.MealRecord, error)

	// ListMeals returns all local meal records
	ListMeals(ctx context.Context) ([]*models.MealRecord, error)

	// DeleteMeal removes a local meal record
	// Deleting a missing record is not an error
	DeleteMeal(ctx context.Context, id string) error
}
