package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/arcade/internal/prefs"
)

type showJSON struct {
	gameJSON
	Description string      `json:"description"`
	Favorite    bool        `json:"favorite"`
	Rating      prefs.Stats `json:"rating"`
	UserRating  int         `json:"user_rating,omitempty"`
}

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *ShowCommand) executeWithEnv(e *env) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required")
	}
	g, ok := e.catalog.Get(c.ID)
	if !ok {
		return fmt.Errorf("game not found: %s", c.ID)
	}

	ctx := context.Background()
	out := showJSON{
		gameJSON:    toGameJSON(g, e.now()),
		Description: g.Description,
		Favorite:    e.profile.Favorites.IsFavorite(ctx, g.ID),
		Rating:      e.profile.Ratings.StatsFor(ctx, g.ID),
	}
	out.UserRating, _ = e.profile.Ratings.UserRating(ctx, g.ID)

	if wantJSON(c.globals) {
		return printJSON(out)
	}

	fmt.Println(g.Title)
	fmt.Println(strings.Repeat("=", len(g.Title)))
	fmt.Printf("ID:          %s\n", g.ID)
	fmt.Printf("Categories:  %s\n", strings.Join(out.Categories, ", "))
	fmt.Printf("Added:       %s", out.AddedAt)
	if out.New {
		fmt.Print(" (new)")
	}
	fmt.Println()
	fmt.Printf("Embed:       %s\n", g.EmbedURL)
	if out.Rating.Total > 0 {
		fmt.Printf("Rating:      %.1f / 5 (%d %s)\n", out.Rating.Average, out.Rating.Total, plural(out.Rating.Total, "rating", "ratings"))
	} else {
		fmt.Println("Rating:      not rated yet")
	}
	if out.UserRating > 0 {
		fmt.Printf("Your rating: %d\n", out.UserRating)
	}
	if out.Favorite {
		fmt.Println("Favorite:    yes")
	}
	if g.Description != "" {
		fmt.Println()
		fmt.Println(g.Description)
	}
	return nil
}
