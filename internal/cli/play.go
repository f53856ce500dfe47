package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/arcade/internal/player"
)

// Execute implements the go-flags Commander interface for PlayCommand.
func (c *PlayCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *PlayCommand) executeWithEnv(e *env) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required")
	}

	p := player.New(e.catalog, e.cfg.Player, e.logger, player.WithClock(e.now))
	sess, err := p.Open(context.Background(), e.name, e.profile, c.ID)
	if err != nil {
		return err
	}

	if wantJSON(c.globals) {
		return printJSON(sess)
	}

	fmt.Printf("Now playing: %s\n", sess.Title)
	fmt.Println(sess.EmbedURL)
	return nil
}
