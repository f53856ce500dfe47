// Package prefs holds the per-profile preference stores. Each store owns one
// storage key holding a JSON document. Reads never fail: a missing key, a
// corrupt payload or a backend error all read as empty state. Write errors
// are logged and dropped.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// Storage keys. These match the keys the web client has always used so a
// browser export can be imported as-is.
const (
	FavoritesKey   = "rinnxus_favorites"
	RatingsKey     = "game_ratings"
	UserRatingsKey = "user_game_ratings"
	RecentKey      = "gamehub_recently_played"
	ThemeKey       = "rinnxus_theme"
	AdShownKey     = "lastAdShown"
)

// Keys lists every key the preference stores write.
func Keys() []string {
	return []string{FavoritesKey, RatingsKey, UserRatingsKey, RecentKey, ThemeKey, AdShownKey}
}

type slot struct {
	store  storage.Storage
	key    string
	logger zerolog.Logger
	now    func() time.Time
}

func newSlot(store storage.Storage, key string, logger zerolog.Logger) slot {
	return slot{
		store:  store,
		key:    key,
		logger: logger.With().Str("key", key).Logger(),
		now:    time.Now,
	}
}

// raw returns the stored string and whether one was present.
func (s slot) raw(ctx context.Context) (string, bool) {
	v, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("read failed")
		}
		return "", false
	}
	return v, true
}

// read decodes the stored JSON into v. It reports false, leaving v
// untouched, when nothing usable is stored.
func (s slot) read(ctx context.Context, v any) bool {
	data, ok := s.raw(ctx)
	if !ok || data == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt value, treating as empty")
		return false
	}
	return true
}

func (s slot) write(ctx context.Context, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn().Err(err).Msg("encode failed")
		return
	}
	s.writeRaw(ctx, string(data))
}

func (s slot) writeRaw(ctx context.Context, value string) {
	if err := s.store.Set(ctx, s.key, value); err != nil {
		s.logger.Warn().Err(err).Msg("write failed")
	}
}

func (s slot) remove(ctx context.Context) {
	if err := s.store.Remove(ctx, s.key); err != nil {
		s.logger.Warn().Err(err).Msg("remove failed")
	}
}

// subscribe calls fn after every change to the slot's key. The returned
// function stops delivery.
func (s slot) subscribe(fn func()) func() {
	return s.store.Watch(s.key, func(string) { fn() })
}

func epochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
