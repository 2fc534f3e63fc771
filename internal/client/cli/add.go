package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	httpclient "github.com/iudanet/platesync/internal/client/api"
	"github.com/iudanet/platesync/internal/models"
)

func (c *Cli) runAdd(ctx context.Context) error {
	authData, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Add Meal ===")
	c.io.Println()

	name, err := c.io.ReadInput("Name (e.g., 'Oatmeal with berries'): ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	calories, err := c.readIntField("Calories (kcal): ")
	if err != nil {
		return err
	}

	protein, err := c.readFloatField("Protein (g): ")
	if err != nil {
		return err
	}

	carbs, err := c.readFloatField("Carbs (g): ")
	if err != nil {
		return err
	}

	fat, err := c.readFloatField("Fat (g): ")
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	record := &models.MealRecord{
		ID:        uuid.New().String(),
		UserID:    authData.UserID,
		Name:      name,
		Calories:  calories,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		EatenAt:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Сначала сохраняем локально: запись видна в list независимо от
	// исхода сетевой попытки
	if err := c.meals.SaveMeal(ctx, record); err != nil {
		return fmt.Errorf("failed to save meal locally: %w", err)
	}

	c.io.Println()

	_, err = c.engine.SyncNow(ctx, authData.AccessToken, record, models.OpTypeCreate)
	switch {
	case err == nil:
		c.io.Printf("✓ Meal saved and synced (id: %s)\n", record.ID)
	case httpclient.IsTransport(err):
		// Мутация durable поставлена в очередь
		c.io.Printf("✓ Meal saved locally (id: %s)\n", record.ID)
		c.io.Println("⚠ Server unreachable, queued for sync. Run 'platesync sync' later.")
	default:
		return fmt.Errorf("failed to sync meal: %w", err)
	}

	return nil
}

func (c *Cli) readIntField(prompt string) (int, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	if input == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", input, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return value, nil
}

func (c *Cli) readFloatField(prompt string) (float64, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	if input == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", input, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return value, nil
}
