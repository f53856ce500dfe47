package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(addedLayout, s)
	require.NoError(t, err)
	return d
}

// newFixture builds a two-game catalog: A is a puzzle, B is a featured racer.
func newFixture(t *testing.T) *Catalog {
	t.Helper()
	games := []Game{
		{
			ID:          "a",
			Title:       "Alpha Blocks",
			Categories:  []Category{CategoryPuzzle},
			Description: "Stack the blocks",
			AddedAt:     mustDate(t, "2026-01-01"),
		},
		{
			ID:          "b",
			Title:       "Bolt Rally",
			Categories:  []Category{CategoryRacing},
			Description: "Drift through the desert",
			AddedAt:     mustDate(t, "2026-01-02"),
			Featured:    true,
			Hot:         true,
		},
	}
	cols := []Collection{
		{ID: "mix", Title: "Mix", GameIDs: []string{"b", "ghost", "a"}},
	}
	c, err := New(games, cols, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func ids(games []Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}

func TestCatalog_ByCategoryAndFeatured(t *testing.T) {
	c := newFixture(t)

	assert.Equal(t, []string{"a"}, ids(c.ByCategory("puzzle")))
	assert.Equal(t, []string{"a", "b"}, ids(c.ByCategory(CategoryAll)))
	assert.Equal(t, []string{"b"}, ids(c.Featured()))
	assert.Equal(t, []string{"b"}, ids(c.Hot()))
	assert.Empty(t, c.TwoPlayer())
	assert.Empty(t, c.ByCategory("sports"))
}

func TestCatalog_Get(t *testing.T) {
	c := newFixture(t)

	g, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "Bolt Rally", g.Title)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCatalog_Search(t *testing.T) {
	c := newFixture(t)

	assert.Len(t, c.Search(""), c.Len())
	assert.Len(t, c.Search("   "), c.Len())
	assert.Empty(t, c.Search("zzz-no-such-substring"))

	assert.Equal(t, []string{"a"}, ids(c.Search("ALPHA")))
	assert.Equal(t, []string{"b"}, ids(c.Search("  desert ")))
	assert.Equal(t, []string{"b"}, ids(c.Search("racing")))
}

func TestCatalog_Categories(t *testing.T) {
	c := newFixture(t)
	assert.Equal(t, []string{"all", "puzzle", "racing"}, c.Categories())
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := newFixture(t)
	all := c.All()
	all[0].Title = "changed"

	g, _ := c.Get("a")
	assert.Equal(t, "Alpha Blocks", g.Title)
}

func TestCatalog_Lookup(t *testing.T) {
	c := newFixture(t)
	assert.Equal(t, []string{"b", "a"}, ids(c.Lookup([]string{"b", "nope", "a"})))
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	games := []Game{{ID: "x"}, {ID: "x"}}
	_, err := New(games, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestIsNew_FiveDayBoundary(t *testing.T) {
	added := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := Game{ID: "n", AddedAt: added}

	assert.True(t, IsNew(g, added))
	assert.True(t, IsNew(g, added.Add(5*24*time.Hour)))
	assert.False(t, IsNew(g, added.Add(5*24*time.Hour+time.Millisecond)))

	// Distance is absolute, so a future date counts the same way.
	assert.True(t, IsNew(g, added.Add(-5*24*time.Hour)))
	assert.False(t, IsNew(g, added.Add(-6*24*time.Hour)))
}

func TestResolve_DropsUnknownIDs(t *testing.T) {
	c := newFixture(t)
	col, ok := c.Collection("mix")
	require.True(t, ok)

	r := c.Resolve(col)
	assert.Equal(t, []string{"b", "a"}, ids(r.Games))
	assert.Equal(t, 1, r.Dropped)

	_, ok = c.Collection("nope")
	assert.False(t, ok)
}

func TestParseGames_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown category",
			yaml: `
games:
  - id: "x"
    title: "X"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: [strategy]
    added_at: "2026-01-01"
`,
		},
		{
			name: "no categories",
			yaml: `
games:
  - id: "x"
    title: "X"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: []
    added_at: "2026-01-01"
`,
		},
		{
			name: "bad date",
			yaml: `
games:
  - id: "x"
    title: "X"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: [io]
    added_at: "Jan 1"
`,
		},
		{
			name: "duplicate id",
			yaml: `
games:
  - id: "x"
    title: "X"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: [io]
    added_at: "2026-01-01"
  - id: "x"
    title: "X again"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: [io]
    added_at: "2026-01-01"
`,
		},
		{
			name: "not yaml",
			yaml: ":::{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGames([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseGames_AddedAtIsUTCMidnight(t *testing.T) {
	games, err := ParseGames([]byte(`
games:
  - id: "x"
    title: "X"
    thumbnail: "https://example.com/x.png"
    embed_url: "https://example.com/x"
    categories: [io, casual]
    two_player: true
    added_at: "2026-02-03"
`))
	require.NoError(t, err)
	require.Len(t, games, 1)

	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), games[0].AddedAt)
	assert.Equal(t, []Category{CategoryIO, CategoryCasual}, games[0].Categories)
	assert.True(t, games[0].TwoPlayer)
}

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 59, c.Len())
	assert.Len(t, c.Search(""), 59)
	assert.NotEmpty(t, c.Featured())
	assert.Len(t, c.Collections(), 6)
	assert.Equal(t, CategoryAll, c.Categories()[0])

	for _, g := range c.All() {
		assert.NotEmpty(t, g.Categories, g.ID)
		assert.True(t, strings.HasPrefix(g.EmbedURL, "http"), g.ID)
	}
}

func TestLoad_HiddenGemsDropsMissingGames(t *testing.T) {
	c, err := Load(zerolog.Nop())
	require.NoError(t, err)

	col, ok := c.Collection("hidden-gems")
	require.True(t, ok)

	r := c.Resolve(col)
	assert.Equal(t, 3, r.Dropped)
	assert.Len(t, r.Games, len(col.GameIDs)-3)
}
