package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/runnerr0/arcade/internal/analytics"
	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/prefs"
)

type gameView struct {
	catalog.Game
	IsNew bool `json:"isNew"`
}

type gameDetail struct {
	gameView
	Favorite   bool        `json:"favorite"`
	Stats      prefs.Stats `json:"stats"`
	UserRating int         `json:"userRating,omitempty"`
}

type collectionView struct {
	catalog.Collection
	Games   []gameView `json:"games"`
	Dropped int        `json:"dropped"`
}

func (s *Server) views(games []catalog.Game) []gameView {
	now := s.now()
	out := make([]gameView, len(games))
	for i, g := range games {
		out[i] = gameView{Game: g, IsNew: catalog.IsNew(g, now)}
	}
	return out
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	query := r.URL.Query().Get("q")

	var games []catalog.Game
	if strings.TrimSpace(query) == "" {
		games = s.catalog.ByCategory(category)
	} else {
		games = s.catalog.Search(query)
		if category != catalog.CategoryAll {
			filtered := games[:0]
			for _, g := range games {
				if g.HasCategory(catalog.Category(category)) {
					filtered = append(filtered, g)
				}
			}
			games = filtered
		}
	}

	s.writeJSON(w, http.StatusOK, s.views(games))
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.views(s.catalog.Featured()))
}

func (s *Server) handleTwoPlayer(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.views(s.catalog.TwoPlayer()))
}

func (s *Server) handleHot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.views(s.catalog.Hot()))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Categories())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, "game")
		return
	}
	p := s.profile(w, r)
	if p == nil {
		return
	}

	ctx := r.Context()
	detail := gameDetail{
		gameView: gameView{Game: g, IsNew: catalog.IsNew(g, s.now())},
		Favorite: p.Favorites.IsFavorite(ctx, g.ID),
		Stats:    p.Ratings.StatsFor(ctx, g.ID),
	}
	detail.UserRating, _ = p.Ratings.UserRating(ctx, g.ID)

	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Collections())
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	col, ok := s.catalog.Collection(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, "collection")
		return
	}

	res := s.catalog.Resolve(col)
	s.writeJSON(w, http.StatusOK, collectionView{
		Collection: res.Collection,
		Games:      s.views(res.Games),
		Dropped:    res.Dropped,
	})
}

func (s *Server) handleOpenGame(w http.ResponseWriter, r *http.Request) {
	p := s.profile(w, r)
	if p == nil {
		return
	}

	sess, err := s.player.Open(r.Context(), s.profileName(r), p, chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.metrics.sessions.Inc()

	s.pinger.Ping(r.Context(), analytics.Visit{
		Profile:   s.profileName(r),
		Path:      r.URL.Path,
		GameID:    sess.GameID,
		UserAgent: r.UserAgent(),
	})

	s.writeJSON(w, http.StatusCreated, sess)
}
