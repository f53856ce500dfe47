// Package player tracks play sessions. Opening a game records it as
// recently played and starts the clock that gates rating.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/config"
	"github.com/runnerr0/arcade/internal/prefs"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionNotFound = errors.New("session not found")
	// ErrRatingLocked is returned when a session tries to rate before it has
	// played long enough.
	ErrRatingLocked = errors.New("rating locked until the game has been played")
)

// Session is one open game.
type Session struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Title     string    `json:"title"`
	EmbedURL  string    `json:"embedUrl"`
	Profile   string    `json:"profile"`
	StartedAt time.Time `json:"startedAt"`
	UnlockAt  time.Time `json:"unlockAt"`

	ratings  *prefs.Ratings
	lastSeen time.Time
}

// Elapsed returns how long the session has been open at now.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// CanRate reports whether the session has played long enough to rate.
func (s *Session) CanRate(now time.Time) bool {
	return !now.Before(s.UnlockAt)
}

// Player owns the open sessions of every profile.
type Player struct {
	catalog *catalog.Catalog
	unlock  time.Duration
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Player.
type Option func(*Player)

// WithClock replaces the time source used to stamp and expire sessions.
func WithClock(now func() time.Time) Option {
	return func(p *Player) { p.now = now }
}

// New returns a Player over cat with the unlock and expiry periods of cfg.
func New(cat *catalog.Catalog, cfg config.PlayerConfig, logger zerolog.Logger, opts ...Option) *Player {
	p := &Player{
		catalog:  cat,
		unlock:   cfg.RatingUnlock(),
		ttl:      cfg.SessionTTL(),
		logger:   logger.With().Str("component", "player").Logger(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open starts a session for gameID on the named profile and records the
// game as recently played.
func (p *Player) Open(ctx context.Context, name string, profile *prefs.Profile, gameID string) (*Session, error) {
	game, ok := p.catalog.Get(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	profile.Recent.Record(ctx, game.ID)

	now := p.now()
	s := &Session{
		ID:        uuid.NewString(),
		GameID:    game.ID,
		Title:     game.Title,
		EmbedURL:  game.EmbedURL,
		Profile:   name,
		StartedAt: now,
		UnlockAt:  now.Add(p.unlock),
		ratings:   profile.Ratings,
		lastSeen:  now,
	}

	p.mu.Lock()
	p.sweepLocked(now)
	p.sessions[s.ID] = s
	p.mu.Unlock()

	p.logger.Debug().Str("session", s.ID).Str("profile", name).Str("game", game.ID).Msg("session opened")
	return s, nil
}

// Get returns an open session of the named profile. Sessions of other
// profiles are reported as missing.
func (p *Player) Get(name, id string) (*Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[id]
	if !ok || s.Profile != name || p.expired(s, p.now()) {
		return nil, false
	}
	return s, true
}

// Rate submits value for the session's game once the session has been
// open for the unlock period. Only the profile that opened the session
// may rate through it.
func (p *Player) Rate(ctx context.Context, name, sessionID string, value int, now time.Time) error {
	p.mu.Lock()
	s, ok := p.sessions[sessionID]
	if ok && s.Profile != name {
		ok = false
	} else if ok && p.expired(s, now) {
		delete(p.sessions, sessionID)
		ok = false
	}
	if ok {
		s.lastSeen = now
	}
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if !s.CanRate(now) {
		return fmt.Errorf("%w: %s remaining", ErrRatingLocked, s.UnlockAt.Sub(now).Round(time.Second))
	}

	return s.ratings.Submit(ctx, s.GameID, value)
}

// Close ends a session. Closing an unknown session is a no-op.
func (p *Player) Close(id string) {
	p.mu.Lock()
	delete(p.sessions, id)
	p.mu.Unlock()
}

// Len returns the number of sessions held, including expired ones not yet
// swept.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

func (p *Player) expired(s *Session, now time.Time) bool {
	return p.ttl > 0 && now.Sub(s.lastSeen) > p.ttl
}

func (p *Player) sweepLocked(now time.Time) {
	for id, s := range p.sessions {
		if p.expired(s, now) {
			delete(p.sessions, id)
		}
	}
}
