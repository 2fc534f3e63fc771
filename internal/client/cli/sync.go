package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runSync(ctx context.Context) error {
	authData, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	// Сбрасываем элементы, застрявшие после упавшего drain
	recovered, err := c.engine.Recover(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover queue: %w", err)
	}
	if recovered > 0 {
		c.io.Printf("Recovered %d interrupted item(s)\n", recovered)
	}

	result, err := c.engine.Drain(ctx, authData.AccessToken, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if result.Processed == 0 {
		c.io.Println("✓ Nothing to sync")
		return nil
	}

	c.io.Println("✓ Synchronization completed")
	c.io.Println()
	c.io.Printf("Processed:  %d mutation(s)\n", result.Processed)
	c.io.Printf("Completed:  %d\n", result.Completed)
	if result.Failed > 0 {
		c.io.Printf("Failed:     %d (will retry with backoff)\n", result.Failed)
	}
	if result.Conflicts > 0 {
		c.io.Printf("Conflicts:  %d resolved (%d server-wins)\n", result.Conflicts, result.ServerWins)
	}

	pending, err := c.engine.PendingCount(ctx)
	if err == nil && pending > 0 {
		c.io.Println()
		c.io.Printf("⚠ %d mutation(s) still pending\n", pending)
	}

	return nil
}
