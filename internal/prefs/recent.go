package prefs

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// DefaultRecentLimit is how many recently played games are kept.
const DefaultRecentLimit = 3

// RecentGame is one entry of the recently played list.
type RecentGame struct {
	ID       string `json:"id"`
	PlayedAt int64  `json:"playedAt"`
}

// Recent is a short most-recent-first history of played games. Once full,
// each new play evicts the oldest entry.
type Recent struct {
	slot
	limit int
}

// NewRecent returns a history that keeps at most limit entries. A limit
// below one selects DefaultRecentLimit.
func NewRecent(store storage.Storage, limit int, logger zerolog.Logger) *Recent {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	return &Recent{slot: newSlot(store, RecentKey, logger), limit: limit}
}

// List returns the stored entries, most recent first.
func (r *Recent) List(ctx context.Context) []RecentGame {
	var games []RecentGame
	if !r.read(ctx, &games) {
		return nil
	}
	return games
}

// IDs returns the stored game ids, most recent first.
func (r *Recent) IDs(ctx context.Context) []string {
	games := r.List(ctx)
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

// Record moves gameID to the front with a fresh timestamp.
func (r *Recent) Record(ctx context.Context, gameID string) {
	games := r.List(ctx)

	out := make([]RecentGame, 0, r.limit)
	out = append(out, RecentGame{ID: gameID, PlayedAt: epochMillis(r.now())})
	for _, g := range games {
		if len(out) == r.limit {
			break
		}
		if g.ID != gameID {
			out = append(out, g)
		}
	}

	r.write(ctx, out)
}

// Clear forgets every entry.
func (r *Recent) Clear(ctx context.Context) {
	r.remove(ctx)
}

// Subscribe registers fn to run after the list changes.
func (r *Recent) Subscribe(fn func()) func() {
	return r.subscribe(fn)
}
