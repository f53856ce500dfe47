// Package catalog holds the static game list and curated collections and
// answers every read-only query over them.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Catalog is an immutable, in-memory game catalog. All methods are safe for
// concurrent use and never fail: misses yield empty results or false.
type Catalog struct {
	games       []Game
	byID        map[string]int
	collections []Collection
	logger      zerolog.Logger
}

// New builds a catalog from already-validated games and collections.
func New(games []Game, collections []Collection, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		games:       games,
		byID:        make(map[string]int, len(games)),
		collections: collections,
		logger:      logger,
	}
	for i, g := range games {
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q", g.ID)
		}
		c.byID[g.ID] = i
	}
	return c, nil
}

// Load builds the catalog from the data embedded in the binary.
func Load(logger zerolog.Logger) (*Catalog, error) {
	games, err := ParseGames(gamesYAML)
	if err != nil {
		return nil, err
	}
	cols, err := ParseCollections(collectionsYAML)
	if err != nil {
		return nil, err
	}
	return New(games, cols, logger)
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.games)
}

// All returns every game in declared order.
func (c *Catalog) All() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// Get looks up a game by id.
func (c *Catalog) Get(id string) (Game, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// ByCategory returns the games tagged with category, or every game for
// CategoryAll.
func (c *Catalog) ByCategory(category string) []Game {
	if category == CategoryAll {
		return c.All()
	}
	return c.filter(func(g Game) bool { return g.HasCategory(Category(category)) })
}

// Search matches query case-insensitively against title, description and
// category tags. A blank query matches every game.
func (c *Catalog) Search(query string) []Game {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}

	return c.filter(func(g Game) bool {
		if strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Description), q) {
			return true
		}
		for _, cat := range g.Categories {
			if strings.Contains(string(cat), q) {
				return true
			}
		}
		return false
	})
}

// Featured returns the games flagged for the homepage carousel.
func (c *Catalog) Featured() []Game {
	return c.filter(func(g Game) bool { return g.Featured })
}

// TwoPlayer returns the games playable by two people on one keyboard.
func (c *Catalog) TwoPlayer() []Game {
	return c.filter(func(g Game) bool { return g.TwoPlayer })
}

// Hot returns the games flagged as trending.
func (c *Catalog) Hot() []Game {
	return c.filter(func(g Game) bool { return g.Hot })
}

// Categories returns CategoryAll followed by each category in the order it
// first appears in the catalog.
func (c *Catalog) Categories() []string {
	seen := make(map[Category]bool)
	out := []string{CategoryAll}
	for _, g := range c.games {
		for _, cat := range g.Categories {
			if !seen[cat] {
				seen[cat] = true
				out = append(out, string(cat))
			}
		}
	}
	return out
}

// Lookup resolves ids to games in the given order, skipping unknown ids.
func (c *Catalog) Lookup(ids []string) []Game {
	out := make([]Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := c.Get(id); ok {
			out = append(out, g)
		}
	}
	return out
}

// Collections returns every curated collection in declared order.
func (c *Catalog) Collections() []Collection {
	out := make([]Collection, len(c.collections))
	copy(out, c.collections)
	return out
}

// Collection looks up a curated collection by id.
func (c *Catalog) Collection(id string) (Collection, bool) {
	for _, col := range c.collections {
		if col.ID == id {
			return col, true
		}
	}
	return Collection{}, false
}

func (c *Catalog) filter(keep func(Game) bool) []Game {
	out := []Game{}
	for _, g := range c.games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
