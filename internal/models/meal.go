package models

// MealRecord представляет одну запись о приеме пищи.
// Это основная доменная сущность: клиент создает и редактирует записи
// локально, сервер хранит каноническую версию.
type MealRecord struct {
	ID        string  `json:"id"`         // ID уникальный идентификатор записи (UUID)
	UserID    string  `json:"user_id"`    // UserID идентификатор владельца записи
	Name      string  `json:"name"`       // Name название блюда (например, "овсянка с ягодами")
	PhotoID   string  `json:"photo_id"`   // PhotoID опциональный идентификатор фото (ключ кэша миниатюр)
	Calories  int     `json:"calories"`   // Calories калорийность, ккал
	ProteinG  float64 `json:"protein_g"`  // ProteinG белки, граммы
	CarbsG    float64 `json:"carbs_g"`    // CarbsG углеводы, граммы
	FatG      float64 `json:"fat_g"`      // FatG жиры, граммы
	EatenAt   int64   `json:"eaten_at"`   // EatenAt время приема пищи, epoch milliseconds
	CreatedAt int64   `json:"created_at"` // CreatedAt время создания записи, epoch milliseconds
	UpdatedAt int64   `json:"updated_at"` // UpdatedAt время последнего изменения, epoch milliseconds (LWW)
	Deleted   bool    `json:"deleted"`    // Deleted флаг tombstone на wire-уровне
}

// Clone создает глубокую копию записи
func (m *MealRecord) Clone() *MealRecord {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// IsNewerThan сравнивает две записи по алгоритму LWW (Last-Write-Wins).
// Отсутствующий UpdatedAt (нулевое значение) трактуется как epoch 0:
// запись без timestamp никогда не выигрывает у записи с timestamp.
// При равных timestamp возвращает false - равенство разрешается в пользу
// вызывающей стороны (см. conflict.Resolve).
func (m *MealRecord) IsNewerThan(other *MealRecord) bool {
	var otherUpdated int64
	if other != nil {
		otherUpdated = other.UpdatedAt
	}
	return m.UpdatedAt > otherUpdated
}
