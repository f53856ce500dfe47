package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/arcade/internal/prefs"
	"github.com/runnerr0/arcade/internal/storage"
)

func TestSearch_HumanOutput(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &SearchCommand{Category: "all", globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e, []string{"slope"}))
	})
	assert.Contains(t, output, `for "slope"`)
	assert.Contains(t, output, "Slope")
}

func TestSearch_NoResults(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &SearchCommand{Category: "all", globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e, []string{"zzz-no-such-substring"}))
	})
	assert.Contains(t, output, "No games found")
}

func TestSearch_EmptyQueryJSONReturnsCatalog(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &SearchCommand{Category: "all", globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e, nil))
	})

	var out struct {
		Count int        `json:"count"`
		Games []gameJSON `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, e.catalog.Len(), out.Count)
	assert.Len(t, out.Games, e.catalog.Len())
}

func TestSearch_CategoryAndLimit(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &SearchCommand{Category: "puzzle", Limit: 2, globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e, nil))
	})

	var out struct {
		Games []gameJSON `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	require.Len(t, out.Games, 2)
	for _, g := range out.Games {
		assert.Contains(t, g.Categories, "puzzle")
	}
}

func TestList_NewFilter(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &ListCommand{Category: "all", New: true, globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})

	var out struct {
		Count int        `json:"count"`
		Games []gameJSON `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, 18, out.Count)
	for _, g := range out.Games {
		assert.True(t, g.New, g.ID)
	}
}

func TestList_TwoPlayerHuman(t *testing.T) {
	e := newTestEnv(t, "")
	cmd := &ListCommand{Category: "all", TwoPlayer: true, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEnv(e))
	})
	assert.Contains(t, output, "2p")
	assert.Contains(t, output, "8 games")
}

func TestShow(t *testing.T) {
	e := newTestEnv(t, "")
	ctx := context.Background()
	require.NoError(t, e.profile.Ratings.Submit(ctx, "slope", 4))
	e.profile.Favorites.Toggle(ctx, "slope")

	output := captureOutput(t, func() {
		require.NoError(t, (&ShowCommand{ID: "slope", globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Slope")
	assert.Contains(t, output, "4.0 / 5 (1 rating)")
	assert.Contains(t, output, "Favorite:    yes")

	err := (&ShowCommand{globals: &GlobalFlags{}}).executeWithEnv(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")

	err = (&ShowCommand{ID: "nope", globals: &GlobalFlags{}}).executeWithEnv(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game not found")
}

func TestPlay_RecordsRecent(t *testing.T) {
	e := newTestEnv(t, "")

	output := captureOutput(t, func() {
		require.NoError(t, (&PlayCommand{ID: "2048", globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Now playing: 2048")
	assert.Contains(t, output, "https://www.2048.org/")
	assert.Equal(t, []string{"2048"}, e.profile.Recent.IDs(context.Background()))

	err := (&PlayCommand{ID: "nope", globals: &GlobalFlags{}}).executeWithEnv(e)
	assert.Error(t, err)
}

func TestRecent_ShowAndClear(t *testing.T) {
	e := newTestEnv(t, "")
	ctx := context.Background()
	for _, id := range []string{"slope", "2048", "tetris", "duck-life"} {
		e.profile.Recent.Record(ctx, id)
	}

	output := captureOutput(t, func() {
		require.NoError(t, (&RecentCommand{globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	lines := strings.Split(output, "\n")
	assert.Contains(t, lines[2], "Duck Life")
	assert.NotContains(t, output, "Slope")

	captureOutput(t, func() {
		require.NoError(t, (&RecentCommand{Clear: true, globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Empty(t, e.profile.Recent.IDs(ctx))
}

func TestFav_ToggleAndList(t *testing.T) {
	e := newTestEnv(t, "")

	output := captureOutput(t, func() {
		require.NoError(t, (&FavCommand{ID: "tetris", globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Added Tetris to favorites.")

	output = captureOutput(t, func() {
		require.NoError(t, (&FavCommand{List: true, globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "1 favorite")
	assert.Contains(t, output, "Tetris")

	output = captureOutput(t, func() {
		require.NoError(t, (&FavCommand{ID: "tetris", globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Removed Tetris from favorites.")
}

func TestRate_AndTop(t *testing.T) {
	e := newTestEnv(t, "")

	for _, stars := range []int{5, 5, 3} {
		captureOutput(t, func() {
			require.NoError(t, (&RateCommand{ID: "slope", Stars: stars, globals: &GlobalFlags{}}).executeWithEnv(e))
		})
	}
	captureOutput(t, func() {
		require.NoError(t, (&RateCommand{ID: "2048", Stars: 5, globals: &GlobalFlags{}}).executeWithEnv(e))
	})

	err := (&RateCommand{ID: "slope", Stars: 6, globals: &GlobalFlags{}}).executeWithEnv(e)
	assert.ErrorIs(t, err, prefs.ErrInvalidRating)

	output := captureOutput(t, func() {
		require.NoError(t, (&TopCommand{Min: 3, Limit: 6, globals: &GlobalFlags{JSON: true}}).executeWithEnv(e))
	})

	var out struct {
		Count int       `json:"count"`
		Games []topJSON `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "slope", out.Games[0].ID)
	assert.InDelta(t, 13.0/3.0, out.Games[0].Average, 1e-9)

	output = captureOutput(t, func() {
		require.NoError(t, (&TopCommand{Most: true, Limit: 6, globals: &GlobalFlags{JSON: true}}).executeWithEnv(e))
	})
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, 2, out.Count)
}

func TestTheme(t *testing.T) {
	e := newTestEnv(t, "")

	output := captureOutput(t, func() {
		require.NoError(t, (&ThemeCommand{globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Equal(t, "Theme: dark\n", output)

	output = captureOutput(t, func() {
		require.NoError(t, (&ThemeCommand{Toggle: true, globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Equal(t, "Theme: light\n", output)

	err := (&ThemeCommand{Set: "sepia", globals: &GlobalFlags{}}).executeWithEnv(e)
	assert.ErrorIs(t, err, prefs.ErrInvalidTheme)

	err = (&ThemeCommand{Set: "dark", Toggle: true, globals: &GlobalFlags{}}).executeWithEnv(e)
	assert.Error(t, err)
}

func TestCollections(t *testing.T) {
	e := newTestEnv(t, "")

	output := captureOutput(t, func() {
		require.NoError(t, (&CollectionsCommand{globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Hidden Gems")
	assert.Contains(t, output, "(hidden-gems)")

	output = captureOutput(t, func() {
		require.NoError(t, (&CollectionsCommand{ID: "hidden-gems", globals: &GlobalFlags{JSON: true}}).executeWithEnv(e))
	})
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, 3, out.Count)

	err := (&CollectionsCommand{ID: "nope", globals: &GlobalFlags{}}).executeWithEnv(e)
	assert.Error(t, err)
}

func TestStatus_JSON(t *testing.T) {
	e := newTestEnv(t, "kiosk")
	ctx := context.Background()
	e.profile.Favorites.Toggle(ctx, "slope")
	require.NoError(t, e.profile.Ratings.Submit(ctx, "slope", 5))

	output := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}).executeWithEnv(e))
	})

	var out statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, "dev", out.Version)
	assert.Equal(t, 59, out.Games)
	assert.Equal(t, 6, out.Collections)
	assert.Equal(t, "sqlite", out.Driver)
	assert.Equal(t, int64(3), out.TotalKeys)
	assert.Equal(t, "kiosk", out.Profile)
	assert.Equal(t, 1, out.Favorites)
	assert.Equal(t, 1, out.RatingEvents)
	assert.Equal(t, "dark", out.Theme)
}

func TestStatus_Human(t *testing.T) {
	e := newTestEnv(t, "")

	output := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{}, version: "dev"}).executeWithEnv(e))
	})
	assert.Contains(t, output, "Arcade Status")
	assert.Contains(t, output, "Catalog:       59 games, 6 collections")
	assert.Contains(t, output, "Profile:       default")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2<<20))
}

func TestPurge_WithoutAllFlag_Errors(t *testing.T) {
	err := RunWithArgs("test", []string{"purge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge requires --all flag for safety")
}

func TestPurge_WithAllAndForce_OnlyTouchesProfile(t *testing.T) {
	e := newTestEnv(t, "alice")
	other, err := newEnv(e.cfg, e.catalog, e.backend, "bob", e.logger)
	require.NoError(t, err)
	ctx := context.Background()

	e.profile.Favorites.Toggle(ctx, "slope")
	e.profile.Recent.Record(ctx, "slope")
	other.profile.Favorites.Toggle(ctx, "2048")

	output := captureOutput(t, func() {
		require.NoError(t, (&PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}).executeWithEnv(e))
	})
	assert.Contains(t, output, `Purged 2 keys from profile "alice"`)

	assert.Zero(t, e.profile.Favorites.Count(ctx))
	assert.Equal(t, []string{"2048"}, other.profile.Favorites.IDs(ctx))
}

func TestPurge_ConfirmationPrompt(t *testing.T) {
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.profile.Favorites.Toggle(ctx, "slope")

	cmd := &PurgeCommand{All: true, globals: &GlobalFlags{}, in: strings.NewReader("nope\n")}
	var err error
	captureOutput(t, func() { err = cmd.executeWithEnv(e) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation text did not match")
	assert.Equal(t, 1, e.profile.Favorites.Count(ctx))

	cmd = &PurgeCommand{All: true, globals: &GlobalFlags{JSON: true}, in: strings.NewReader("PURGE\n")}
	output := captureOutput(t, func() { require.NoError(t, cmd.executeWithEnv(e)) })
	assert.Contains(t, output, `"removed": 1`)
	assert.Zero(t, e.profile.Favorites.Count(ctx))
}

func TestNewEnv_RejectsInvalidProfile(t *testing.T) {
	e := newTestEnv(t, "")

	for _, name := range []string{"alice:theme", strings.Repeat("p", 65)} {
		_, err := newEnv(e.cfg, e.catalog, e.backend, name, e.logger)
		assert.ErrorIs(t, err, storage.ErrInvalidProfile, name)
	}

	cfg := *e.cfg
	cfg.Storage.Profile = "bad:default"
	_, err := newEnv(&cfg, e.catalog, e.backend, "", e.logger)
	assert.ErrorIs(t, err, storage.ErrInvalidProfile)
}
