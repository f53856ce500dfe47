package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/arcade/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version      string `json:"version"`
	Games        int    `json:"games"`
	Collections  int    `json:"collections"`
	Driver       string `json:"driver"`
	Location     string `json:"location"`
	TotalKeys    int64  `json:"total_keys"`
	SizeBytes    int64  `json:"size_bytes"`
	Profile      string `json:"profile"`
	Favorites    int    `json:"favorites"`
	RatingEvents int    `json:"rating_events"`
	Recent       int    `json:"recent"`
	Theme        string `json:"theme"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	e, err := openEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.executeWithEnv(e)
}

// executeWithEnv runs status against a provided env (for testing).
func (c *StatusCommand) executeWithEnv(e *env) error {
	ctx := context.Background()

	stats, err := e.backend.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	out := statusJSON{
		Version:      c.version,
		Games:        e.catalog.Len(),
		Collections:  len(e.catalog.Collections()),
		Driver:       stats.Driver,
		Location:     storageLocation(e),
		TotalKeys:    stats.TotalKeys,
		SizeBytes:    stats.SizeBytes,
		Profile:      e.name,
		Favorites:    e.profile.Favorites.Count(ctx),
		RatingEvents: len(e.profile.Ratings.Events(ctx)),
		Recent:       len(e.profile.Recent.IDs(ctx)),
		Theme:        string(e.profile.Theme.Get(ctx)),
	}

	if wantJSON(c.globals) {
		return printJSON(out)
	}
	return c.printStatusHuman(out)
}

func (c *StatusCommand) printStatusHuman(s statusJSON) error {
	fmt.Println("Arcade Status")
	fmt.Println("=============")
	fmt.Printf("Version:       %s\n", s.Version)
	fmt.Printf("Catalog:       %s games, %d collections\n", formatNumber(int64(s.Games)), s.Collections)
	fmt.Printf("Storage:       %s", s.Driver)
	if s.Location != "" {
		fmt.Printf(" (%s)", s.Location)
	}
	fmt.Println()
	fmt.Printf("Keys:          %s (%s)\n", formatNumber(s.TotalKeys), formatBytes(s.SizeBytes))

	fmt.Println()
	fmt.Printf("Profile:       %s\n", s.Profile)
	fmt.Printf("Favorites:     %d\n", s.Favorites)
	fmt.Printf("Ratings:       %d\n", s.RatingEvents)
	fmt.Printf("Recent:        %d\n", s.Recent)
	fmt.Printf("Theme:         %s\n", s.Theme)

	return nil
}

// storageLocation describes where the configured backend keeps its data.
func storageLocation(e *env) string {
	cfg := e.cfg.Storage
	switch cfg.Driver {
	case "", "sqlite":
		if p, err := storage.SQLitePath(cfg); err == nil {
			return p
		}
	case "badger":
		return cfg.BadgerDir
	case "redis":
		return fmt.Sprintf("%s/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	return ""
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
		if len(s) > remainder {
			result.WriteString(",")
		}
	}
	for i := remainder; i < len(s); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
