package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for RateCommand.
func (c *RateCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *RateCommand) executeWithEnv(e *env) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required")
	}
	g, ok := e.catalog.Get(c.ID)
	if !ok {
		return fmt.Errorf("game not found: %s", c.ID)
	}

	ctx := context.Background()
	if err := e.profile.Ratings.Submit(ctx, g.ID, c.Stars); err != nil {
		return err
	}
	stats := e.profile.Ratings.StatsFor(ctx, g.ID)

	if wantJSON(c.globals) {
		return printJSON(map[string]any{"id": g.ID, "rating": c.Stars, "stats": stats})
	}
	fmt.Printf("Rated %s %d/5. Average now %.1f from %d %s.\n",
		g.Title, c.Stars, stats.Average, stats.Total, plural(stats.Total, "rating", "ratings"))
	return nil
}
