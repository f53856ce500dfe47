package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/arcade/internal/prefs"
)

type topJSON struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Total   int     `json:"total"`
}

// Execute implements the go-flags Commander interface for TopCommand.
func (c *TopCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *TopCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	var ranked []prefs.GameStats
	if c.Most {
		ranked = e.profile.Ratings.MostRated(ctx, -1)
	} else {
		ranked = e.profile.Ratings.TopRated(ctx, c.Min)
	}

	out := []topJSON{}
	for _, gs := range ranked {
		if c.Limit > 0 && len(out) == c.Limit {
			break
		}
		g, ok := e.catalog.Get(gs.GameID)
		if !ok {
			continue
		}
		out = append(out, topJSON{ID: g.ID, Title: g.Title, Average: gs.Stats.Average, Total: gs.Stats.Total})
	}

	if wantJSON(c.globals) {
		return printJSON(map[string]any{"count": len(out), "games": out})
	}

	if len(out) == 0 {
		fmt.Printf("No games with at least %d %s yet.\n", c.Min, plural(c.Min, "rating", "ratings"))
		return nil
	}
	for i, t := range out {
		fmt.Printf("%d. %-28s %.1f (%d)\n", i+1, t.Title, t.Average, t.Total)
	}
	return nil
}
