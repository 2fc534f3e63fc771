package cli

import (
	"context"
	"fmt"
	"time"

	httpclient "github.com/iudanet/platesync/internal/client/api"
	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/models"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing meal id. Usage: platesync delete <id>")
	}
	mealID := args[0]

	authData, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	record, err := c.meals.GetMeal(ctx, mealID)
	if err != nil {
		if err == storage.ErrMealNotFound {
			return fmt.Errorf("meal %s not found", mealID)
		}
		return fmt.Errorf("failed to get meal: %w", err)
	}

	// Tombstone с новым timestamp участвует в LWW на сервере
	record.Deleted = true
	record.UpdatedAt = time.Now().UnixMilli()

	// Локально удаляем сразу: list не показывает удаленное независимо
	// от исхода сетевой попытки
	if err := c.meals.DeleteMeal(ctx, mealID); err != nil {
		return fmt.Errorf("failed to delete meal locally: %w", err)
	}

	_, err = c.engine.SyncNow(ctx, authData.AccessToken, record, models.OpTypeDelete)
	switch {
	case err == nil:
		c.io.Printf("✓ Meal %s deleted\n", mealID)
	case httpclient.IsTransport(err):
		c.io.Printf("✓ Meal %s deleted locally\n", mealID)
		c.io.Println("⚠ Server unreachable, queued for sync. Run 'platesync sync' later.")
	default:
		return fmt.Errorf("failed to sync deletion: %w", err)
	}

	return nil
}
