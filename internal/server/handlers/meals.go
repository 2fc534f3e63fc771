package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/internal/server/storage"
	"github.com/iudanet/platesync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user_id в контексте
	UserIDKey contextKey = "user_id"
	// UsernameKey ключ для хранения username в контексте
	UsernameKey contextKey = "username"
)

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// MealsHandler обрабатывает запросы к записям о приемах пищи
type MealsHandler struct {
	logger  *slog.Logger
	storage storage.MealStorage
}

// NewMealsHandler создает новый handler для записей
func NewMealsHandler(logger *slog.Logger, mealStorage storage.MealStorage) *MealsHandler {
	return &MealsHandler{
		logger:  logger,
		storage: mealStorage,
	}
}

// Create обрабатывает POST /api/v1/meals
// Создание новой записи. Мутация идемпотентна по operation_id.
func (h *MealsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.MutateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode mutate request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.applyMutation(w, r, userID, req, http.StatusCreated)
}

// Update обрабатывает PUT /api/v1/meals/{id}
// Обновление существующей записи. Мутация идемпотентна по operation_id.
func (h *MealsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	mealID := r.PathValue("id")
	if mealID == "" {
		h.sendError(w, "meal id is required", http.StatusBadRequest)
		return
	}

	var req api.MutateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode mutate request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Meal.ID != "" && req.Meal.ID != mealID {
		h.sendError(w, "meal id mismatch", http.StatusBadRequest)
		return
	}
	req.Meal.ID = mealID

	h.applyMutation(w, r, userID, req, http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/meals/{id}
// Удаление записи: на сервере сохраняется tombstone с updated_at клиента,
// чтобы LWW работал одинаково для правок и удалений.
func (h *MealsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	mealID := r.PathValue("id")
	if mealID == "" {
		h.sendError(w, "meal id is required", http.StatusBadRequest)
		return
	}

	var req api.DeleteMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode delete request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.OperationID == "" {
		h.sendError(w, "operation_id is required", http.StatusBadRequest)
		return
	}
	if req.UpdatedAt <= 0 {
		h.sendError(w, "updated_at is required", http.StatusBadRequest)
		return
	}

	// Строим tombstone поверх текущей версии, если она есть
	tombstone := &models.MealRecord{
		ID:     mealID,
		UserID: userID,
	}
	stored, err := h.storage.GetMeal(ctx, userID, mealID)
	if err != nil && !errors.Is(err, storage.ErrMealNotFound) {
		h.logger.ErrorContext(ctx, "failed to get meal", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if stored != nil {
		tombstone = stored.Clone()
	}
	tombstone.Deleted = true
	tombstone.UpdatedAt = req.UpdatedAt

	outcome, canonical, err := h.storage.ApplyMutation(ctx, req.OperationID, tombstone)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to apply delete", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeOutcome(w, r, outcome, canonical, http.StatusOK)
}

// List обрабатывает GET /api/v1/meals
// Возвращает все записи пользователя без tombstones
func (h *MealsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	meals, err := h.storage.ListMeals(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list meals", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	apiMeals := make([]api.Meal, 0, len(meals))
	for _, meal := range meals {
		apiMeals = append(apiMeals, mealToAPI(meal))
	}

	resp := struct {
		Meals []api.Meal `json:"meals"`
	}{Meals: apiMeals}

	h.sendJSON(w, resp, http.StatusOK)
}

// applyMutation выполняет общую часть Create/Update: валидация запроса,
// применение мутации и трансляция исхода в HTTP статус
func (h *MealsHandler) applyMutation(w http.ResponseWriter, r *http.Request, userID string, req api.MutateMealRequest, appliedStatus int) {
	ctx := r.Context()

	if req.OperationID == "" {
		h.sendError(w, "operation_id is required", http.StatusBadRequest)
		return
	}
	if req.Meal.ID == "" {
		h.sendError(w, "meal id is required", http.StatusBadRequest)
		return
	}
	if req.Meal.Name == "" && !req.Meal.Deleted {
		h.sendError(w, "meal name is required", http.StatusBadRequest)
		return
	}

	incoming := mealFromAPI(req.Meal)
	// Владелец записи определяется токеном, а не телом запроса
	incoming.UserID = userID

	outcome, canonical, err := h.storage.ApplyMutation(ctx, req.OperationID, incoming)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to apply mutation", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeOutcome(w, r, outcome, canonical, appliedStatus)
}

// writeOutcome транслирует исход мутации в HTTP ответ.
// В теле всегда каноническая версия записи: при конфликте это
// выигравшая серверная версия со статусом 409.
func (h *MealsHandler) writeOutcome(w http.ResponseWriter, r *http.Request, outcome storage.MutationOutcome, canonical *models.MealRecord, appliedStatus int) {
	ctx := r.Context()
	resp := api.MealResponse{Meal: mealToAPI(canonical)}

	switch outcome {
	case storage.MutationApplied:
		h.sendJSON(w, resp, appliedStatus)
	case storage.MutationDuplicate:
		h.logger.InfoContext(ctx, "duplicate operation, returning canonical version",
			slog.String("meal_id", canonical.ID))
		h.sendJSON(w, resp, http.StatusOK)
	case storage.MutationConflict:
		h.logger.InfoContext(ctx, "mutation rejected, server version is newer",
			slog.String("meal_id", canonical.ID),
			slog.Int64("server_updated_at", canonical.UpdatedAt))
		h.sendJSON(w, resp, http.StatusConflict)
	default:
		h.logger.ErrorContext(ctx, "unknown mutation outcome", slog.Int("outcome", int(outcome)))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// mealToAPI конвертирует доменную запись в wire-формат
func mealToAPI(m *models.MealRecord) api.Meal {
	if m == nil {
		return api.Meal{}
	}
	return api.Meal{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		PhotoID:   m.PhotoID,
		Calories:  m.Calories,
		ProteinG:  m.ProteinG,
		CarbsG:    m.CarbsG,
		FatG:      m.FatG,
		EatenAt:   m.EatenAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Deleted:   m.Deleted,
	}
}

// mealFromAPI конвертирует wire-формат в доменную запись
func mealFromAPI(m api.Meal) *models.MealRecord {
	return &models.MealRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		PhotoID:   m.PhotoID,
		Calories:  m.Calories,
		ProteinG:  m.ProteinG,
		CarbsG:    m.CarbsG,
		FatG:      m.FatG,
		EatenAt:   m.EatenAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Deleted:   m.Deleted,
	}
}

func (h *MealsHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *MealsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
