package cli

import (
	"fmt"

	"github.com/runnerr0/arcade/internal/catalog"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *ListCommand) executeWithEnv(e *env) error {
	now := e.now()

	var games []catalog.Game
	for _, g := range e.catalog.ByCategory(c.Category) {
		switch {
		case c.Featured && !g.Featured,
			c.TwoPlayer && !g.TwoPlayer,
			c.Hot && !g.Hot,
			c.New && !catalog.IsNew(g, now):
			continue
		}
		games = append(games, g)
	}

	if !wantJSON(c.globals) && len(games) == 0 {
		fmt.Println("No games match these filters.")
		return nil
	}
	header := fmt.Sprintf("%d %s", len(games), plural(len(games), "game", "games"))
	return printGames(c.globals, games, now, header)
}
