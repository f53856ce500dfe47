// Package server exposes the catalog and the per-profile preference stores
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/analytics"
	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/config"
	"github.com/runnerr0/arcade/internal/player"
	"github.com/runnerr0/arcade/internal/prefs"
	"github.com/runnerr0/arcade/internal/storage"
)

// ProfileHeader selects the preference profile of a request.
const ProfileHeader = "X-Arcade-Profile"

// Server is the HTTP API.
type Server struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	store    storage.Storage
	player   *player.Player
	pinger   *analytics.Pinger
	limiter  *keyedLimiter
	metrics  *metrics
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time

	router *chi.Mux
}

// New wires a server over an opened backend. The server does not own
// store; the caller closes it.
func New(cfg *config.Config, cat *catalog.Catalog, store storage.Storage, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "server").Logger()

	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		store:    store,
		pinger:   analytics.NewPinger(cfg.Analytics, logger),
		limiter:  newKeyedLimiter(cfg.Server.RatingRPS, cfg.Server.RatingBurst),
		metrics:  newMetrics(),
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
		router:   chi.NewRouter(),
	}

	s.player = player.New(cat, cfg.Player, logger, player.WithClock(func() time.Time { return s.now() }))

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", ProfileHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Get("/featured", s.handleFeatured)
			r.Get("/two-player", s.handleTwoPlayer)
			r.Get("/hot", s.handleHot)
			r.Get("/{id}", s.handleGetGame)
		})
		r.Get("/categories", s.handleCategories)

		r.Get("/collections", s.handleListCollections)
		r.Get("/collections/{id}", s.handleGetCollection)

		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites/{id}/toggle", s.handleToggleFavorite)

		r.Get("/recent", s.handleListRecent)
		r.Delete("/recent", s.handleClearRecent)
		r.Post("/play/{id}", s.handleOpenGame)
		r.With(s.rateLimitRatings).Post("/sessions/{id}/rating", s.handleRateSession)

		r.Get("/ratings/top", s.handleTopRated)
		r.Get("/ratings/{id}", s.handleGetRating)
		r.With(s.rateLimitRatings).Post("/ratings/{id}", s.handleSubmitRating)

		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handleSetTheme)
		r.Post("/theme/toggle", s.handleToggleTheme)

		r.Get("/ads/slots", s.handleAdSlots)
		r.Post("/ads/trigger", s.handleAdTrigger)
		r.Get("/panic", s.handlePanic)

		r.Get("/events", s.handleEvents)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Int("games", s.catalog.Len()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.Server.ShutdownSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.pinger.Wait()
	return nil
}

// profileName returns the profile a request targets.
func (s *Server) profileName(r *http.Request) string {
	if p := r.Header.Get(ProfileHeader); p != "" {
		return p
	}
	return s.cfg.Storage.Profile
}

// profile returns the preference stores of the request's profile, or
// writes a 400 and returns nil when the header is malformed.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) *prefs.Profile {
	name := s.profileName(r)
	if err := storage.ValidateProfile(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "invalid profile name")
		return nil
	}

	scoped := storage.NewScoped(s.store, name)
	return prefs.NewProfile(scoped, prefs.Options{
		RecentLimit: s.cfg.Player.RecentLimit,
		AdCooldown:  s.cfg.Ads.Cooldown(),
	}, s.logger.With().Str("profile", name).Logger())
}

// observe logs every request and records its metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)

		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		s.metrics.latency.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// clientHost returns the client address without its port. RealIP has
// already replaced RemoteAddr when a proxy header was present.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitRatings limits rating submissions per profile and client host.
func (s *Server) rateLimitRatings(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := s.profileName(r) + "|" + clientHost(r)
		if !s.limiter.Allow(key) {
			s.metrics.ratings.WithLabelValues("rate_limited").Inc()
			s.writeError(w, http.StatusTooManyRequests, "rate_limited", "too many ratings, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if _, err := s.store.Stats(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]any{
		"status": status,
		"games":  s.catalog.Len(),
	})
}
