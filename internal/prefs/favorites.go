package prefs

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// Favorite is one favorited game.
type Favorite struct {
	ID      string `json:"id"`
	AddedAt int64  `json:"addedAt"`
}

// Favorites is the set of games a profile has starred.
type Favorites struct {
	slot
}

// NewFavorites returns the favorites stored in store.
func NewFavorites(store storage.Storage, logger zerolog.Logger) *Favorites {
	return &Favorites{slot: newSlot(store, FavoritesKey, logger)}
}

func (f *Favorites) load(ctx context.Context) []Favorite {
	var favs []Favorite
	if !f.read(ctx, &favs) {
		return nil
	}
	return favs
}

// List returns the favorites, most recently added first.
func (f *Favorites) List(ctx context.Context) []Favorite {
	favs := f.load(ctx)
	sort.SliceStable(favs, func(i, j int) bool {
		return favs[i].AddedAt > favs[j].AddedAt
	})
	return favs
}

// IDs returns the favorite game ids, most recently added first.
func (f *Favorites) IDs(ctx context.Context) []string {
	favs := f.List(ctx)
	ids := make([]string, len(favs))
	for i, fav := range favs {
		ids[i] = fav.ID
	}
	return ids
}

// IsFavorite reports whether gameID is a favorite.
func (f *Favorites) IsFavorite(ctx context.Context, gameID string) bool {
	for _, fav := range f.load(ctx) {
		if fav.ID == gameID {
			return true
		}
	}
	return false
}

// Count returns the number of favorites.
func (f *Favorites) Count(ctx context.Context) int {
	return len(f.load(ctx))
}

// Toggle adds gameID when absent and removes it when present. It returns
// the new membership state.
func (f *Favorites) Toggle(ctx context.Context, gameID string) bool {
	favs := f.load(ctx)

	kept := make([]Favorite, 0, len(favs)+1)
	for _, fav := range favs {
		if fav.ID != gameID {
			kept = append(kept, fav)
		}
	}

	if len(kept) < len(favs) {
		f.write(ctx, kept)
		return false
	}

	kept = append(kept, Favorite{ID: gameID, AddedAt: epochMillis(f.now())})
	f.write(ctx, kept)
	return true
}

// Subscribe registers fn to run after the favorites change.
func (f *Favorites) Subscribe(fn func()) func() {
	return f.subscribe(fn)
}
