package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for RecentCommand.
func (c *RecentCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *RecentCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	if c.Clear {
		e.profile.Recent.Clear(ctx)
		if wantJSON(c.globals) {
			return printJSON(map[string]any{"cleared": true})
		}
		fmt.Println("Cleared recently played games.")
		return nil
	}

	games := e.catalog.Lookup(e.profile.Recent.IDs(ctx))
	if !wantJSON(c.globals) && len(games) == 0 {
		fmt.Println("Nothing played yet.")
		return nil
	}
	return printGames(c.globals, games, e.now(), "Recently played")
}
