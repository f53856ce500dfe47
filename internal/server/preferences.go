package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/player"
	"github.com/runnerr0/arcade/internal/prefs"
)

type ratingRequest struct {
	Rating int `json:"rating"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type ratedGame struct {
	Game  gameView    `json:"game"`
	Stats prefs.Stats `json:"stats"`
}

type ratingView struct {
	GameID     string      `json:"gameId"`
	Stats      prefs.Stats `json:"stats"`
	HasRated   bool        `json:"hasRated"`
	UserRating int         `json:"userRating,omitempty"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	ids := p.Favorites.IDs(r.Context())
	s.writeJSON(w, http.StatusOK, s.views(s.catalog.Lookup(ids)))
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		s.notFound(w, "game")
		return
	}
	p := s.profile(w, r)
	if p == nil {
		return
	}

	fav := p.Favorites.Toggle(r.Context(), id)
	s.metrics.favoriteToggle.WithLabelValues(strconv.FormatBool(fav)).Inc()

	s.writeJSON(w, http.StatusOK, map[string]any{"gameId": id, "favorite": fav})
}

func (s *Server) handleListRecent(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	ids := p.Recent.IDs(r.Context())
	s.writeJSON(w, http.StatusOK, s.views(s.catalog.Lookup(ids)))
}

func (s *Server) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	p.Recent.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRateSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := s.profileName(r)
	sess, ok := s.player.Get(name, id)
	if !ok {
		s.writeErr(w, fmt.Errorf("%w: %s", player.ErrSessionNotFound, id))
		return
	}

	var req ratingRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if err := s.player.Rate(r.Context(), name, id, req.Rating, s.now()); err != nil {
		s.metrics.ratings.WithLabelValues("rejected").Inc()
		s.writeErr(w, err)
		return
	}
	s.metrics.ratings.WithLabelValues("accepted").Inc()

	s.writeRating(w, r, sess.GameID, http.StatusCreated)
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		s.notFound(w, "game")
		return
	}

	var req ratingRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	p := s.profile(w, r)
	if p == nil {
		return
	}

	if err := p.Ratings.Submit(r.Context(), id, req.Rating); err != nil {
		s.metrics.ratings.WithLabelValues("rejected").Inc()
		s.writeErr(w, err)
		return
	}
	s.metrics.ratings.WithLabelValues("accepted").Inc()

	s.writeRating(w, r, id, http.StatusCreated)
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.Get(id); !ok {
		s.notFound(w, "game")
		return
	}
	s.writeRating(w, r, id, http.StatusOK)
}

func (s *Server) writeRating(w http.ResponseWriter, r *http.Request, gameID string, status int) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	ctx := r.Context()

	v := ratingView{
		GameID:   gameID,
		Stats:    p.Ratings.StatsFor(ctx, gameID),
		HasRated: p.Ratings.HasRated(ctx, gameID),
	}
	v.UserRating, _ = p.Ratings.UserRating(ctx, gameID)

	s.writeJSON(w, status, v)
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	minCount := queryInt(r, "min", s.cfg.Player.TopRatedMin)
	limit := queryInt(r, "limit", s.cfg.Player.TopRatedLimit)

	p := s.profile(w, r)
	if p == nil {
		return
	}

	now := s.now()
	out := []ratedGame{}
	for _, gs := range p.Ratings.TopRated(r.Context(), minCount) {
		if limit > 0 && len(out) == limit {
			break
		}
		g, ok := s.catalog.Get(gs.GameID)
		if !ok {
			continue
		}
		out = append(out, ratedGame{
			Game:  gameView{Game: g, IsNew: catalog.IsNew(g, now)},
			Stats: gs.Stats,
		})
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, themeRequest{Theme: string(p.Theme.Get(r.Context()))})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	p := s.profile(w, r)
	if p == nil {
		return
	}

	theme, err := prefs.ParseTheme(req.Theme)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	p.Theme.Set(r.Context(), theme)
	s.writeJSON(w, http.StatusOK, themeRequest{Theme: string(theme)})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, themeRequest{Theme: string(p.Theme.Toggle(r.Context()))})
}

func (s *Server) handleAdSlots(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"slots":    prefs.AdSlots(),
		"networks": s.cfg.Ads.Networks,
	})
}

func (s *Server) handleAdTrigger(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}

	shown := p.Ads.Trigger(r.Context(), s.now())
	s.metrics.adTriggers.WithLabelValues(strconv.FormatBool(shown)).Inc()

	resp := map[string]any{"show": shown}
	if shown {
		resp["url"] = s.cfg.Ads.DirectLinkURL
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.cfg.Ads.PanicURL, http.StatusFound)
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
