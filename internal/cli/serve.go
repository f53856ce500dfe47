package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/runnerr0/arcade/internal/server"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.executeWithEnv(ctx, e)
}

func (c *ServeCommand) executeWithEnv(ctx context.Context, e *env) error {
	if c.Host != "" {
		e.cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		e.cfg.Server.Port = c.Port
	}

	srv := server.New(e.cfg, e.catalog, e.backend, e.logger)
	return srv.Run(ctx)
}
