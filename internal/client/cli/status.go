package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/platesync/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'platesync login' to authenticate.")
		return nil
	}

	authData, err := c.authService.CurrentAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			c.io.Println("Status: Not authenticated")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	expiresAt := time.Unix(authData.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	}

	// Количество мутаций, ожидающих синхронизации
	pendingCount, err := c.engine.PendingCount(ctx)
	if err != nil {
		// Не прерываем выполнение, просто предупреждаем
		c.io.Printf("\nWarning: failed to get pending sync count: %v\n", err)
		return nil
	}

	c.io.Println()
	if pendingCount > 0 {
		c.io.Printf("⚠ Pending sync: %d mutation(s) waiting\n", pendingCount)
		c.io.Println("Run 'platesync sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All data synchronized with server")
	}

	return nil
}
