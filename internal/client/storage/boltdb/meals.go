package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

// SaveMeal stores or overwrites a local meal snapshot
func (s *Storage) SaveMeal(ctx context.Context, meal *models.MealRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(meal)
	if err != nil {
		return fmt.Errorf("failed to marshal meal record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeals)
		if bucket == nil {
			return fmt.Errorf("meals bucket not found")
		}

		if err := bucket.Put([]byte(meal.ID), data); err != nil {
			return fmt.Errorf("failed to save meal record: %w", err)
		}

		return nil
	})
}

// GetMeal retrieves a local meal snapshot by id
func (s *Storage) GetMeal(ctx context.Context, id string) (*models.MealRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var meal *models.MealRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeals)
		if bucket == nil {
			return storage.ErrMealNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrMealNotFound
		}

		meal = &models.MealRecord{}
		if err := json.Unmarshal(data, meal); err != nil {
			return fmt.Errorf("failed to unmarshal meal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return meal, nil
}

// ListMeals returns all local meal snapshots
func (s *Storage) ListMeals(ctx context.Context) ([]*models.MealRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var meals []*models.MealRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeals)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var meal models.MealRecord
			if err := json.Unmarshal(v, &meal); err != nil {
				return fmt.Errorf("failed to unmarshal meal record: %w", err)
			}
			meals = append(meals, &meal)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list meal records: %w", err)
	}

	return meals, nil
}

// DeleteMeal removes a local meal snapshot; missing record is not an error
func (s *Storage) DeleteMeal(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeals)
		if bucket == nil {
			return nil
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete meal record: %w", err)
		}

		return nil
	})
}
