package cli

import (
	"fmt"
)

type collectionJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	GameIDs     []string `json:"game_ids"`
}

// Execute implements the go-flags Commander interface for CollectionsCommand.
func (c *CollectionsCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *CollectionsCommand) executeWithEnv(e *env) error {
	if c.ID != "" {
		col, ok := e.catalog.Collection(c.ID)
		if !ok {
			return fmt.Errorf("collection not found: %s", c.ID)
		}
		res := e.catalog.Resolve(col)
		return printGames(c.globals, res.Games, e.now(), fmt.Sprintf("%s %s: %s", col.Icon, col.Title, col.Description))
	}

	cols := e.catalog.Collections()
	if wantJSON(c.globals) {
		out := make([]collectionJSON, len(cols))
		for i, col := range cols {
			out[i] = collectionJSON{ID: col.ID, Title: col.Title, Description: col.Description, GameIDs: col.GameIDs}
		}
		return printJSON(map[string]any{"count": len(out), "collections": out})
	}

	for _, col := range cols {
		res := e.catalog.Resolve(col)
		fmt.Printf("%s %-22s %d %s  (%s)\n", col.Icon, col.Title, len(res.Games), plural(len(res.Games), "game", "games"), col.ID)
	}
	return nil
}
