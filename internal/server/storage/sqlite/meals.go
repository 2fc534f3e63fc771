package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/internal/server/storage"
)

const mealColumns = `id, user_id, name, photo_id, calories, protein_g, carbs_g, fat_g, eaten_at, created_at, updated_at, deleted`

// ApplyMutation atomically applies an idempotent LWW mutation.
// Порядок проверок внутри одной транзакции:
//  1. operation_id уже в журнале - дубликат, ничего не меняем;
//  2. сохраненная версия строго новее входящей - конфликт;
//  3. иначе записываем входящую версию и регистрируем operation_id.
func (s *Storage) ApplyMutation(ctx context.Context, operationID string, incoming *models.MealRecord) (storage.MutationOutcome, *models.MealRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Шаг 1: проверяем журнал идемпотентности
	var appliedMealID string
	err = tx.QueryRowContext(ctx,
		`SELECT meal_id FROM applied_operations WHERE operation_id = ?`,
		operationID,
	).Scan(&appliedMealID)

	switch {
	case err == nil:
		// Повторная доставка: возвращаем текущую каноническую версию
		current, getErr := getMealTx(ctx, tx, incoming.UserID, appliedMealID)
		if getErr != nil && !errors.Is(getErr, storage.ErrMealNotFound) {
			return 0, nil, getErr
		}
		if current == nil {
			current = incoming.Clone()
		}
		return storage.MutationDuplicate, current, nil
	case errors.Is(err, sql.ErrNoRows):
		// Операция еще не применялась
	default:
		return 0, nil, fmt.Errorf("failed to check operation: %w", err)
	}

	// Шаг 2: LWW сравнение с сохраненной версией.
	// Сохраненная выигрывает только при строго большем updated_at,
	// ничья - в пользу входящей.
	stored, err := getMealTx(ctx, tx, incoming.UserID, incoming.ID)
	if err != nil && !errors.Is(err, storage.ErrMealNotFound) {
		return 0, nil, err
	}
	if stored != nil && stored.IsNewerThan(incoming) {
		return storage.MutationConflict, stored, nil
	}

	// Шаг 3: применяем входящую версию
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO meals (`+mealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		incoming.ID,
		incoming.UserID,
		incoming.Name,
		incoming.PhotoID,
		incoming.Calories,
		incoming.ProteinG,
		incoming.CarbsG,
		incoming.FatG,
		incoming.EatenAt,
		incoming.CreatedAt,
		incoming.UpdatedAt,
		incoming.Deleted,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to upsert meal: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applied_operations (operation_id, user_id, meal_id, applied_at)
		VALUES (?, ?, ?, ?)
	`,
		operationID,
		incoming.UserID,
		incoming.ID,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to record operation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return storage.MutationApplied, incoming.Clone(), nil
}

// GetMeal retrieves a single meal for a user, including tombstones
func (s *Storage) GetMeal(ctx context.Context, userID, mealID string) (*models.MealRecord, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = ? AND id = ?`

	meal, err := scanMeal(s.db.QueryRowContext(ctx, query, userID, mealID))
	if err != nil {
		return nil, err
	}

	return meal, nil
}

// ListMeals returns all non-deleted meals for a user
func (s *Storage) ListMeals(ctx context.Context, userID string) ([]*models.MealRecord, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE user_id = ? AND deleted = 0
		ORDER BY eaten_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var meals []*models.MealRecord
	for rows.Next() {
		meal := &models.MealRecord{}
		if err := rows.Scan(
			&meal.ID,
			&meal.UserID,
			&meal.Name,
			&meal.PhotoID,
			&meal.Calories,
			&meal.ProteinG,
			&meal.CarbsG,
			&meal.FatG,
			&meal.EatenAt,
			&meal.CreatedAt,
			&meal.UpdatedAt,
			&meal.Deleted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}

// getMealTx читает запись внутри транзакции
func getMealTx(ctx context.Context, tx *sql.Tx, userID, mealID string) (*models.MealRecord, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = ? AND id = ?`
	return scanMeal(tx.QueryRowContext(ctx, query, userID, mealID))
}

func scanMeal(row *sql.Row) (*models.MealRecord, error) {
	meal := &models.MealRecord{}

	err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&meal.Name,
		&meal.PhotoID,
		&meal.Calories,
		&meal.ProteinG,
		&meal.CarbsG,
		&meal.FatG,
		&meal.EatenAt,
		&meal.CreatedAt,
		&meal.UpdatedAt,
		&meal.Deleted,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return meal, nil
}
