package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for FavCommand.
func (c *FavCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *FavCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	if c.List || c.ID == "" {
		games := e.catalog.Lookup(e.profile.Favorites.IDs(ctx))
		if !wantJSON(c.globals) && len(games) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		return printGames(c.globals, games, e.now(), fmt.Sprintf("%d %s", len(games), plural(len(games), "favorite", "favorites")))
	}

	g, ok := e.catalog.Get(c.ID)
	if !ok {
		return fmt.Errorf("game not found: %s", c.ID)
	}

	fav := e.profile.Favorites.Toggle(ctx, g.ID)
	if wantJSON(c.globals) {
		return printJSON(map[string]any{"id": g.ID, "favorite": fav})
	}
	if fav {
		fmt.Printf("Added %s to favorites.\n", g.Title)
	} else {
		fmt.Printf("Removed %s from favorites.\n", g.Title)
	}
	return nil
}
