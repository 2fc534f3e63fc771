package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/internal/server/storage"
	"github.com/iudanet/platesync/pkg/api"
)

// mockMealStorage is an in-memory implementation of MealStorage for testing
type mockMealStorage struct {
	meals      map[string]*models.MealRecord // userID/mealID -> record
	operations map[string]string             // operationID -> mealID
	applyError error
}

func newMockMealStorage() *mockMealStorage {
	return &mockMealStorage{
		meals:      make(map[string]*models.MealRecord),
		operations: make(map[string]string),
	}
}

func mealKey(userID, mealID string) string {
	return userID + "/" + mealID
}

func (m *mockMealStorage) ApplyMutation(ctx context.Context, operationID string, incoming *models.MealRecord) (storage.MutationOutcome, *models.MealRecord, error) {
	if m.applyError != nil {
		return 0, nil, m.applyError
	}

	if mealID, ok := m.operations[operationID]; ok {
		if current, exists := m.meals[mealKey(incoming.UserID, mealID)]; exists {
			return storage.MutationDuplicate, current.Clone(), nil
		}
		return storage.MutationDuplicate, incoming.Clone(), nil
	}

	stored := m.meals[mealKey(incoming.UserID, incoming.ID)]
	if stored != nil && stored.IsNewerThan(incoming) {
		return storage.MutationConflict, stored.Clone(), nil
	}

	m.meals[mealKey(incoming.UserID, incoming.ID)] = incoming.Clone()
	m.operations[operationID] = incoming.ID
	return storage.MutationApplied, incoming.Clone(), nil
}

func (m *mockMealStorage) GetMeal(ctx context.Context, userID, mealID string) (*models.MealRecord, error) {
	meal, ok := m.meals[mealKey(userID, mealID)]
	if !ok {
		return nil, storage.ErrMealNotFound
	}
	return meal.Clone(), nil
}

func (m *mockMealStorage) ListMeals(ctx context.Context, userID string) ([]*models.MealRecord, error) {
	var result []*models.MealRecord
	for _, meal := range m.meals {
		if meal.UserID == userID && !meal.Deleted {
			result = append(result, meal.Clone())
		}
	}
	return result, nil
}

func newMealsHandler(mealStorage *mockMealStorage) *MealsHandler {
	return NewMealsHandler(testLogger(), mealStorage)
}

// mealsRequest создает запрос с user_id в контексте (как после AuthMiddleware)
func mealsRequest(t *testing.T, method, target, userID string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		ctx := context.WithValue(req.Context(), UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	return req
}

func testAPIMeal(mealID string, updatedAt int64) api.Meal {
	return api.Meal{
		ID:        mealID,
		Name:      "oatmeal with berries",
		Calories:  320,
		ProteinG:  12,
		CarbsG:    54,
		FatG:      7,
		EatenAt:   updatedAt,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestCreateMeal_Success(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	req := mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("m1", 1000),
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.MealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp.Meal.ID)
	// Владелец берется из токена, а не из тела запроса
	assert.Equal(t, "user123", resp.Meal.UserID)

	stored := store.meals[mealKey("user123", "m1")]
	require.NotNil(t, stored)
	assert.Equal(t, "user123", stored.UserID)
}

func TestCreateMeal_Unauthorized(t *testing.T) {
	h := newMealsHandler(newMockMealStorage())

	req := mealsRequest(t, http.MethodPost, "/api/v1/meals", "", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("m1", 1000),
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateMeal_OwnerFromToken(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	meal := testAPIMeal("m1", 1000)
	meal.UserID = "someone-else"
	req := mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        meal,
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, store.meals[mealKey("user123", "m1")])
	assert.Nil(t, store.meals[mealKey("someone-else", "m1")])
}

func TestCreateMeal_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  api.MutateMealRequest
	}{
		{"missing operation_id", api.MutateMealRequest{Meal: testAPIMeal("m1", 1000)}},
		{"missing meal id", api.MutateMealRequest{OperationID: "op-1", Meal: testAPIMeal("", 1000)}},
		{"missing name", api.MutateMealRequest{OperationID: "op-1", Meal: api.Meal{ID: "m1", UpdatedAt: 1000}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newMealsHandler(newMockMealStorage())
			req := mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", tt.req)
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateMeal_DuplicateOperation(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	body := api.MutateMealRequest{OperationID: "op-1", Meal: testAPIMeal("m1", 1000)}

	rec := httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", body))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Повторная доставка: 200 с канонической версией, не 201
	rec = httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.MealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp.Meal.ID)
}

func TestUpdateMeal_Success(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	rec := httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("m1", 1000),
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	updated := testAPIMeal("m1", 2000)
	updated.Name = "oatmeal with honey"
	req := mealsRequest(t, http.MethodPut, "/api/v1/meals/m1", "user123", api.MutateMealRequest{
		OperationID: "op-2",
		Meal:        updated,
	})
	req.SetPathValue("id", "m1")
	rec = httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "oatmeal with honey", store.meals[mealKey("user123", "m1")].Name)
}

func TestUpdateMeal_Conflict(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	server := testAPIMeal("m1", 5000)
	server.Name = "server version"
	rec := httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        server,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Клиент с устаревшей версией проигрывает, в теле 409 серверная версия
	stale := testAPIMeal("m1", 1000)
	stale.Name = "stale version"
	req := mealsRequest(t, http.MethodPut, "/api/v1/meals/m1", "user123", api.MutateMealRequest{
		OperationID: "op-2",
		Meal:        stale,
	})
	req.SetPathValue("id", "m1")
	rec = httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp api.MealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "server version", resp.Meal.Name)
	assert.Equal(t, int64(5000), resp.Meal.UpdatedAt)

	assert.Equal(t, "server version", store.meals[mealKey("user123", "m1")].Name)
}

func TestUpdateMeal_IDMismatch(t *testing.T) {
	h := newMealsHandler(newMockMealStorage())

	req := mealsRequest(t, http.MethodPut, "/api/v1/meals/m1", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("other-id", 1000),
	})
	req.SetPathValue("id", "m1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMeal_Success(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	rec := httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("m1", 1000),
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := mealsRequest(t, http.MethodDelete, "/api/v1/meals/m1", "user123", api.DeleteMealRequest{
		OperationID: "op-2",
		UpdatedAt:   2000,
	})
	req.SetPathValue("id", "m1")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Запись превращается в tombstone с updated_at клиента
	stored := store.meals[mealKey("user123", "m1")]
	require.NotNil(t, stored)
	assert.True(t, stored.Deleted)
	assert.Equal(t, int64(2000), stored.UpdatedAt)
}

func TestDeleteMeal_StaleDelete(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	rec := httptest.NewRecorder()
	h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
		OperationID: "op-1",
		Meal:        testAPIMeal("m1", 5000),
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Удаление с устаревшим timestamp проигрывает LWW
	req := mealsRequest(t, http.MethodDelete, "/api/v1/meals/m1", "user123", api.DeleteMealRequest{
		OperationID: "op-2",
		UpdatedAt:   1000,
	})
	req.SetPathValue("id", "m1")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, store.meals[mealKey("user123", "m1")].Deleted)
}

func TestListMeals_Success(t *testing.T) {
	store := newMockMealStorage()
	h := newMealsHandler(store)

	for _, op := range []struct {
		opID   string
		mealID string
	}{{"op-1", "m1"}, {"op-2", "m2"}} {
		rec := httptest.NewRecorder()
		h.Create(rec, mealsRequest(t, http.MethodPost, "/api/v1/meals", "user123", api.MutateMealRequest{
			OperationID: op.opID,
			Meal:        testAPIMeal(op.mealID, 1000),
		}))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := mealsRequest(t, http.MethodGet, "/api/v1/meals", "user123", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meals []api.Meal `json:"meals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Meals, 2)
}

func TestListMeals_Empty(t *testing.T) {
	h := newMealsHandler(newMockMealStorage())

	req := mealsRequest(t, http.MethodGet, "/api/v1/meals", "user123", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Пустой список сериализуется как [], а не null
	assert.JSONEq(t, `{"meals":[]}`, rec.Body.String())
}
