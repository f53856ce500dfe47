package prefs

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

const (
	MinStars = 1
	MaxStars = 5

	// DefaultTopRatedMin is the number of ratings a game needs before it can
	// appear in TopRated.
	DefaultTopRatedMin = 3

	// averages closer than this are ranked by rating count instead.
	tieEpsilon = 0.1
)

// RatingEvent is one submitted rating.
type RatingEvent struct {
	GameID    string `json:"gameId"`
	Rating    int    `json:"rating"`
	Timestamp int64  `json:"timestamp"`
}

// Stats summarises the ratings of one game. With no ratings the average is
// 0 and every distribution bucket is 0.
type Stats struct {
	Average      float64     `json:"averageRating"`
	Total        int         `json:"totalRatings"`
	Distribution map[int]int `json:"distribution"`
}

// GameStats pairs a game id with its rating summary.
type GameStats struct {
	GameID string `json:"gameId"`
	Stats  Stats  `json:"stats"`
}

// Ratings keeps the append-only log of every rating submitted on this
// profile and a map of the last value submitted per game. The map is what
// HasRated consults; the log is what the averages are computed from, so a
// game rated twice counts twice in its average.
type Ratings struct {
	events slot
	users  slot
}

// NewRatings returns the ratings stored in store.
func NewRatings(store storage.Storage, logger zerolog.Logger) *Ratings {
	return &Ratings{
		events: newSlot(store, RatingsKey, logger),
		users:  newSlot(store, UserRatingsKey, logger),
	}
}

// Events returns every stored rating event in submission order.
func (r *Ratings) Events(ctx context.Context) []RatingEvent {
	var events []RatingEvent
	if !r.events.read(ctx, &events) {
		return nil
	}
	return events
}

func (r *Ratings) userRatings(ctx context.Context) map[string]int {
	m := map[string]int{}
	if !r.users.read(ctx, &m) || m == nil {
		return map[string]int{}
	}
	return m
}

// Submit records value for gameID. Values outside 1..5 return
// ErrInvalidRating and change nothing.
func (r *Ratings) Submit(ctx context.Context, gameID string, value int) error {
	if value < MinStars || value > MaxStars {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, value)
	}

	events := r.Events(ctx)
	events = append(events, RatingEvent{
		GameID:    gameID,
		Rating:    value,
		Timestamp: epochMillis(r.events.now()),
	})
	r.events.write(ctx, events)

	users := r.userRatings(ctx)
	users[gameID] = value
	r.users.write(ctx, users)

	r.events.logger.Debug().Str("game", gameID).Int("rating", value).Msg("rating added")
	return nil
}

// HasRated reports whether this profile has rated gameID before.
func (r *Ratings) HasRated(ctx context.Context, gameID string) bool {
	_, ok := r.userRatings(ctx)[gameID]
	return ok
}

// UserRating returns the last value this profile submitted for gameID.
func (r *Ratings) UserRating(ctx context.Context, gameID string) (int, bool) {
	v, ok := r.userRatings(ctx)[gameID]
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

// StatsFor summarises every stored rating of gameID.
func (r *Ratings) StatsFor(ctx context.Context, gameID string) Stats {
	return statsOf(r.Events(ctx), gameID)
}

// TopRated returns the games with at least minCount ratings, best average
// first. Averages within 0.1 of each other are ordered by rating count.
func (r *Ratings) TopRated(ctx context.Context, minCount int) []GameStats {
	all := r.aggregate(ctx)

	out := all[:0]
	for _, gs := range all {
		if gs.Stats.Total >= minCount {
			out = append(out, gs)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Stats, out[j].Stats
		if math.Abs(b.Average-a.Average) < tieEpsilon {
			return a.Total > b.Total
		}
		return a.Average > b.Average
	})
	return out
}

// MostRated returns up to limit games ordered by rating count.
func (r *Ratings) MostRated(ctx context.Context, limit int) []GameStats {
	all := r.aggregate(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Stats.Total > all[j].Stats.Total
	})
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Subscribe registers fn to run after a rating is submitted.
func (r *Ratings) Subscribe(fn func()) func() {
	return r.events.subscribe(fn)
}

// aggregate returns stats for every rated game in first-rated order.
func (r *Ratings) aggregate(ctx context.Context) []GameStats {
	events := r.Events(ctx)

	var order []string
	seen := map[string]bool{}
	for _, e := range events {
		if !seen[e.GameID] {
			seen[e.GameID] = true
			order = append(order, e.GameID)
		}
	}

	out := make([]GameStats, 0, len(order))
	for _, id := range order {
		out = append(out, GameStats{GameID: id, Stats: statsOf(events, id)})
	}
	return out
}

func emptyDistribution() map[int]int {
	d := make(map[int]int, MaxStars)
	for s := MinStars; s <= MaxStars; s++ {
		d[s] = 0
	}
	return d
}

// statsOf ignores stored events whose rating is out of range.
func statsOf(events []RatingEvent, gameID string) Stats {
	st := Stats{Distribution: emptyDistribution()}

	sum := 0
	for _, e := range events {
		if e.GameID != gameID || e.Rating < MinStars || e.Rating > MaxStars {
			continue
		}
		st.Distribution[e.Rating]++
		st.Total++
		sum += e.Rating
	}

	if st.Total > 0 {
		st.Average = float64(sum) / float64(st.Total)
	}
	return st
}
