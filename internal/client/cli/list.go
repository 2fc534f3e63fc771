package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"
)

func (c *Cli) runList(ctx context.Context) error {
	meals, err := c.meals.ListMeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list meals: %w", err)
	}

	if len(meals) == 0 {
		c.io.Println("No meals recorded yet. Run 'platesync add' to create one.")
		return nil
	}

	// Свежие записи сверху
	sort.Slice(meals, func(i, j int) bool {
		return meals[i].EatenAt > meals[j].EatenAt
	})

	w := tabwriter.NewWriter(c.io, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKCAL\tP/C/F (g)\tEATEN AT")
	for _, meal := range meals {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f/%.1f/%.1f\t%s\n",
			meal.ID,
			meal.Name,
			meal.Calories,
			meal.ProteinG, meal.CarbsG, meal.FatG,
			time.UnixMilli(meal.EatenAt).Format("2006-01-02 15:04"),
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	c.io.Println()
	c.io.Printf("Total: %d meal(s)\n", len(meals))

	return nil
}
