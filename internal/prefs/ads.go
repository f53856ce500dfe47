package prefs

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// DefaultAdCooldown is the minimum gap between two direct-link ads.
const DefaultAdCooldown = time.Minute

// AdSlot is an ad placement size the front end can request.
type AdSlot struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AdSlots returns the supported placements.
func AdSlots() []AdSlot {
	return []AdSlot{
		{Name: "leaderboard", Width: 728, Height: 90},
		{Name: "rectangle", Width: 300, Height: 250},
		{Name: "skyscraper", Width: 160, Height: 600},
		{Name: "mobile-banner", Width: 320, Height: 50},
	}
}

// LookupAdSlot finds a placement by name.
func LookupAdSlot(name string) (AdSlot, bool) {
	for _, s := range AdSlots() {
		if s.Name == name {
			return s, true
		}
	}
	return AdSlot{}, false
}

// AdCooldown rate limits the direct-link ad. The time of the last ad shown
// is stored as epoch milliseconds in decimal.
type AdCooldown struct {
	slot
	cooldown time.Duration
}

// NewAdCooldown returns a limiter with the given gap. A non-positive
// cooldown selects DefaultAdCooldown.
func NewAdCooldown(store storage.Storage, cooldown time.Duration, logger zerolog.Logger) *AdCooldown {
	if cooldown <= 0 {
		cooldown = DefaultAdCooldown
	}
	return &AdCooldown{slot: newSlot(store, AdShownKey, logger), cooldown: cooldown}
}

// Trigger reports whether an ad may be shown at now and, if so, records
// now as the last time one was. The first call always fires. An unreadable
// stored time never fires.
func (a *AdCooldown) Trigger(ctx context.Context, now time.Time) bool {
	nowMs := epochMillis(now)

	if v, ok := a.raw(ctx); ok && v != "" {
		last, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			a.logger.Warn().Err(err).Msg("unreadable ad timestamp")
			return false
		}
		if nowMs-last <= a.cooldown.Milliseconds() {
			a.logger.Debug().Msg("ad in cooldown")
			return false
		}
	}

	a.writeRaw(ctx, strconv.FormatInt(nowMs, 10))
	return true
}

// LastShown returns when the last ad fired.
func (a *AdCooldown) LastShown(ctx context.Context) (time.Time, bool) {
	v, ok := a.raw(ctx)
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
