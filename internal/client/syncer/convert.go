package syncer

import (
	"github.com/iudanet/platesync/internal/models"
	"github.com/iudanet/platesync/pkg/api"
)

// toAPIMeal конвертирует локальную запись в wire-формат
func toAPIMeal(m *models.MealRecord) api.Meal {
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

// fromAPIMeal конвертирует wire-формат в локальную запись
func fromAPIMeal(m api.Meal) *models.MealRecord {
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
