package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/internal/server/storage"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func createTestUser(t *testing.T, s *Storage, userID string) {
	t.Helper()

	err := s.CreateUser(context.Background(), &models.User{
		ID:           userID,
		Username:     "user_" + userID,
		PasswordHash: "$argon2id$test",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func testMeal(userID, mealID string, updatedAt int64) *models.MealRecord {
	return &models.MealRecord{
		ID:        mealID,
		UserID:    userID,
		Name:      "test meal",
		Calories:  450,
		ProteinG:  20,
		CarbsG:    50,
		FatG:      15,
		EatenAt:   updatedAt,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestApplyMutation_Applied(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	ctx := context.Background()

	incoming := testMeal("u1", "m1", 1000)
	outcome, canonical, err := s.ApplyMutation(ctx, "op-1", incoming)
	require.NoError(t, err)
	assert.Equal(t, storage.MutationApplied, outcome)
	assert.Equal(t, "m1", canonical.ID)

	stored, err := s.GetMeal(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "test meal", stored.Name)
	assert.Equal(t, int64(1000), stored.UpdatedAt)
}

func TestApplyMutation_Duplicate(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	ctx := context.Background()

	incoming := testMeal("u1", "m1", 1000)
	outcome, _, err := s.ApplyMutation(ctx, "op-1", incoming)
	require.NoError(t, err)
	require.Equal(t, storage.MutationApplied, outcome)

	// Повторная доставка того же operation_id - no-op
	modified := testMeal("u1", "m1", 5000)
	modified.Name = "changed"
	outcome, canonical, err := s.ApplyMutation(ctx, "op-1", modified)
	require.NoError(t, err)
	assert.Equal(t, storage.MutationDuplicate, outcome)
	assert.Equal(t, "test meal", canonical.Name)

	stored, err := s.GetMeal(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored.UpdatedAt)
}

func TestApplyMutation_Conflict(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	ctx := context.Background()

	newer := testMeal("u1", "m1", 5000)
	newer.Name = "server version"
	_, _, err := s.ApplyMutation(ctx, "op-1", newer)
	require.NoError(t, err)

	// Входящая версия старше сохраненной - конфликт с серверной версией
	older := testMeal("u1", "m1", 1000)
	older.Name = "stale client version"
	outcome, canonical, err := s.ApplyMutation(ctx, "op-2", older)
	require.NoError(t, err)
	assert.Equal(t, storage.MutationConflict, outcome)
	assert.Equal(t, "server version", canonical.Name)
	assert.Equal(t, int64(5000), canonical.UpdatedAt)

	// Сохраненная версия не изменена
	stored, err := s.GetMeal(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "server version", stored.Name)
}

func TestApplyMutation_TieFavorsIncoming(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	ctx := context.Background()

	first := testMeal("u1", "m1", 1000)
	first.Name = "first"
	_, _, err := s.ApplyMutation(ctx, "op-1", first)
	require.NoError(t, err)

	// Равные updated_at: ничья разрешается в пользу входящей версии
	second := testMeal("u1", "m1", 1000)
	second.Name = "second"
	outcome, canonical, err := s.ApplyMutation(ctx, "op-2", second)
	require.NoError(t, err)
	assert.Equal(t, storage.MutationApplied, outcome)
	assert.Equal(t, "second", canonical.Name)
}

func TestApplyMutation_Tombstone(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	ctx := context.Background()

	_, _, err := s.ApplyMutation(ctx, "op-1", testMeal("u1", "m1", 1000))
	require.NoError(t, err)

	tombstone := testMeal("u1", "m1", 2000)
	tombstone.Deleted = true
	outcome, _, err := s.ApplyMutation(ctx, "op-2", tombstone)
	require.NoError(t, err)
	assert.Equal(t, storage.MutationApplied, outcome)

	// Tombstone хранится, но не виден в списке
	stored, err := s.GetMeal(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, stored.Deleted)

	meals, err := s.ListMeals(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestGetMeal_NotFound(t *testing.T) {
	s := createTestStorage(t)

	_, err := s.GetMeal(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, storage.ErrMealNotFound)
}

func TestListMeals(t *testing.T) {
	s := createTestStorage(t)
	createTestUser(t, s, "u1")
	createTestUser(t, s, "u2")
	ctx := context.Background()

	for i, mealID := range []string{"m1", "m2", "m3"} {
		meal := testMeal("u1", mealID, int64(1000*(i+1)))
		_, _, err := s.ApplyMutation(ctx, "op-"+mealID, meal)
		require.NoError(t, err)
	}

	// Чужая запись не попадает в выборку
	_, _, err := s.ApplyMutation(ctx, "op-other", testMeal("u2", "m-other", 1000))
	require.NoError(t, err)

	meals, err := s.ListMeals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, meals, 3)

	// Свежие записи первыми (ORDER BY eaten_at DESC)
	assert.Equal(t, "m3", meals[0].ID)
	assert.Equal(t, "m1", meals[2].ID)
}
