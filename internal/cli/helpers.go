package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/config"
	"github.com/runnerr0/arcade/internal/logger"
	"github.com/runnerr0/arcade/internal/prefs"
	"github.com/runnerr0/arcade/internal/storage"
)

// env is everything a command needs: config, catalog, the opened backend
// and the preference stores of the selected profile.
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	catalog *catalog.Catalog
	backend storage.Storage
	profile *prefs.Profile
	name    string
	now     func() time.Time

	closers []io.Closer
}

// openEnv loads config, builds the logger, loads the catalog and opens the
// configured storage backend.
func openEnv(globals *GlobalFlags) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals != nil && globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	if globals != nil && globals.Verbose {
		cfg.Logging.Level = "debug"
	}
	log, logCloser, err := logger.New(cfg.Logging, nil)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(log)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	backend, err := storage.Open(context.Background(), cfg.Storage, log)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	e, err := newEnv(cfg, cat, backend, profileFlag(globals), log)
	if err != nil {
		backend.Close()
		logCloser.Close()
		return nil, err
	}
	e.closers = append(e.closers, backend, logCloser)
	return e, nil
}

// newEnv wires the profile stores over an already-open backend. The
// profile name follows the same rules as the HTTP API's profile header.
func newEnv(cfg *config.Config, cat *catalog.Catalog, backend storage.Storage, profile string, log zerolog.Logger) (*env, error) {
	if profile == "" {
		profile = cfg.Storage.Profile
	}
	if err := storage.ValidateProfile(profile); err != nil {
		return nil, err
	}
	scoped := storage.NewScoped(backend, profile)

	return &env{
		cfg:     cfg,
		logger:  log,
		catalog: cat,
		backend: backend,
		profile: prefs.NewProfile(scoped, prefs.Options{
			RecentLimit: cfg.Player.RecentLimit,
			AdCooldown:  cfg.Ads.Cooldown(),
		}, log),
		name: profile,
		now:  time.Now,
	}, nil
}

func (e *env) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func profileFlag(globals *GlobalFlags) string {
	if globals == nil {
		return ""
	}
	return globals.Profile
}

func wantJSON(globals *GlobalFlags) bool {
	return globals != nil && globals.JSON
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// gameJSON is the JSON shape of one game in command output.
type gameJSON struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	EmbedURL   string   `json:"embed_url"`
	AddedAt    string   `json:"added_at"`
	New        bool     `json:"new"`
	Featured   bool     `json:"featured"`
	Hot        bool     `json:"hot"`
	TwoPlayer  bool     `json:"two_player"`
}

func toGameJSON(g catalog.Game, now time.Time) gameJSON {
	return gameJSON{
		ID:         g.ID,
		Title:      g.Title,
		Categories: categoryNames(g),
		EmbedURL:   g.EmbedURL,
		AddedAt:    g.AddedAt.Format("2006-01-02"),
		New:        catalog.IsNew(g, now),
		Featured:   g.Featured,
		Hot:        g.Hot,
		TwoPlayer:  g.TwoPlayer,
	}
}

func categoryNames(g catalog.Game) []string {
	out := make([]string, len(g.Categories))
	for i, c := range g.Categories {
		out[i] = string(c)
	}
	return out
}

// printGames writes a numbered game list, or JSON.
func printGames(globals *GlobalFlags, games []catalog.Game, now time.Time, header string) error {
	if wantJSON(globals) {
		out := make([]gameJSON, len(games))
		for i, g := range games {
			out[i] = toGameJSON(g, now)
		}
		return printJSON(map[string]any{"count": len(games), "games": out})
	}

	if header != "" {
		fmt.Println(header)
		fmt.Println()
	}
	for i, g := range games {
		fmt.Printf("%d. %s", i+1, g.Title)
		var badges []string
		if catalog.IsNew(g, now) {
			badges = append(badges, "new")
		}
		if g.Hot {
			badges = append(badges, "hot")
		}
		if g.TwoPlayer {
			badges = append(badges, "2p")
		}
		if len(badges) > 0 {
			fmt.Printf(" [%s]", strings.Join(badges, ", "))
		}
		fmt.Println()
		fmt.Printf("   %s · %s\n", g.ID, strings.Join(categoryNames(g), ", "))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
