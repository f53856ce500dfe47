package cli

import (
	"fmt"
	"strings"

	"github.com/runnerr0/arcade/internal/catalog"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e, args)
}

// executeWithEnv runs the search against a provided env (for testing).
func (c *SearchCommand) executeWithEnv(e *env, args []string) error {
	query := strings.Join(args, " ")

	results := e.catalog.Search(query)
	if c.Category != "" && c.Category != catalog.CategoryAll {
		filtered := results[:0]
		for _, g := range results {
			if g.HasCategory(catalog.Category(c.Category)) {
				filtered = append(filtered, g)
			}
		}
		results = filtered
	}
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}

	now := e.now()
	if wantJSON(c.globals) {
		return printGames(c.globals, results, now, "")
	}

	if len(results) == 0 {
		fmt.Printf("No games found for %q\n", query)
		return nil
	}

	header := fmt.Sprintf("Found %d %s", len(results), plural(len(results), "game", "games"))
	if strings.TrimSpace(query) != "" {
		header += fmt.Sprintf(" for %q", query)
	}
	return printGames(c.globals, results, now, header)
}
