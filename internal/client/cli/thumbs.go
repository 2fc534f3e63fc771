package cli

import (
	"context"
)

func (c *Cli) runThumbs(ctx context.Context) error {
	c.io.Println("=== Thumbnail Cache ===")
	c.io.Println()

	stats := c.cache.Stats()

	c.io.Printf("Size:     %d byte(s)\n", c.cache.Size())
	c.io.Printf("Hits:     %d\n", stats.Hits)
	c.io.Printf("Misses:   %d\n", stats.Misses)
	c.io.Printf("Requests: %d\n", stats.Total)
	c.io.Printf("Hit rate: %.2f\n", stats.HitRate)

	if stats.Total > 0 && !stats.Healthy {
		c.io.Println()
		c.io.Println("⚠ Hit rate below target, consider raising cache capacity or TTL")
	}

	return nil
}
