package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// Options tunes the stores of a Profile.
type Options struct {
	RecentLimit int
	AdCooldown  time.Duration
}

// Profile bundles every preference store over one storage view.
type Profile struct {
	Favorites *Favorites
	Ratings   *Ratings
	Recent    *Recent
	Theme     *Themes
	Ads       *AdCooldown

	store storage.Storage
}

// NewProfile builds the preference stores for store. Pass a
// storage.Scoped view to keep profiles apart on a shared backend.
func NewProfile(store storage.Storage, opts Options, logger zerolog.Logger) *Profile {
	return &Profile{
		Favorites: NewFavorites(store, logger),
		Ratings:   NewRatings(store, logger),
		Recent:    NewRecent(store, opts.RecentLimit, logger),
		Theme:     NewThemes(store, logger),
		Ads:       NewAdCooldown(store, opts.AdCooldown, logger),
		store:     store,
	}
}

// Purge removes every preference key and returns how many were present.
// A backend failure stops the purge and is returned with the count so far.
func (p *Profile) Purge(ctx context.Context) (int, error) {
	removed := 0
	for _, key := range Keys() {
		if _, err := p.store.Get(ctx, key); errors.Is(err, storage.ErrNotFound) {
			continue
		} else if err != nil {
			return removed, fmt.Errorf("read %s: %w", key, err)
		}
		if err := p.store.Remove(ctx, key); err != nil {
			return removed, fmt.Errorf("remove %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}

