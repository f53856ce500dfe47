package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

func (c *PurgeCommand) executeWithEnv(e *env) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Printf("WARNING: This will permanently delete every preference of profile %q.\n", e.name)
		fmt.Println("  - Favorites")
		fmt.Println("  - Ratings")
		fmt.Println("  - Recently played games")
		fmt.Println("  - Theme and ad settings")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		var in io.Reader = os.Stdin
		if c.in != nil {
			in = c.in
		}
		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	removed, err := e.profile.Purge(context.Background())
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if wantJSON(c.globals) {
		return printJSON(map[string]any{
			"purged":  true,
			"profile": e.name,
			"removed": removed,
		})
	}

	fmt.Printf("Purged %d %s from profile %q.\n", removed, plural(removed, "key", "keys"), e.name)
	return nil
}
