package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/arcade/internal/prefs"
)

// Execute implements the go-flags Commander interface for ThemeCommand.
func (c *ThemeCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *ThemeCommand) executeWithEnv(e *env) error {
	ctx := context.Background()
	if c.Toggle && c.Set != "" {
		return fmt.Errorf("--toggle and --set are mutually exclusive")
	}

	var theme prefs.Theme
	switch {
	case c.Toggle:
		theme = e.profile.Theme.Toggle(ctx)
	case c.Set != "":
		t, err := prefs.ParseTheme(c.Set)
		if err != nil {
			return err
		}
		e.profile.Theme.Set(ctx, t)
		theme = t
	default:
		theme = e.profile.Theme.Get(ctx)
	}

	if wantJSON(c.globals) {
		return printJSON(map[string]string{"theme": string(theme)})
	}
	fmt.Printf("Theme: %s\n", theme)
	return nil
}
