package api

// Meal представляет запись о приеме пищи в wire-формате
type Meal struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	PhotoID   string  `json:"photo_id,omitempty"`
	Calories  int     `json:"calories"`
	ProteinG  float64 `json:"protein_g"`
	CarbsG    float64 `json:"carbs_g"`
	FatG      float64 `json:"fat_g"`
	EatenAt   int64   `json:"eaten_at"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
	Deleted   bool    `json:"deleted,omitempty"`
}

// MutateMealRequest представляет запрос на создание или обновление записи.
// OperationID - ключ идемпотентности: повторная доставка того же
// operation_id после первого успешного применения является no-op.
type MutateMealRequest struct {
	OperationID string `json:"operation_id"`
	Meal        Meal   `json:"meal"`
}

// DeleteMealRequest представляет запрос на удаление записи
type DeleteMealRequest struct {
	OperationID string `json:"operation_id"`
	UpdatedAt   int64  `json:"updated_at"`
}

// MealResponse представляет каноническую версию записи от сервера.
// Возвращается и при успехе (2xx), и в теле 409 Conflict - во втором
// случае Meal содержит выигравшую серверную версию.
type MealResponse struct {
	Meal Meal `json:"meal"`
}

// ErrorResponse представляет ошибку API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
