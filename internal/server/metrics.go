package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	sessions       prometheus.Counter
	ratings        *prometheus.CounterVec
	adTriggers     *prometheus.CounterVec
	favoriteToggle *prometheus.CounterVec
	sseClients     prometheus.Gauge
}

// newMetrics registers the server's collectors on a private registry so
// several servers can coexist in one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arcade_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arcade_play_sessions_total",
			Help: "Play sessions opened",
		}),
		ratings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_ratings_total",
				Help: "Rating submissions by outcome",
			},
			[]string{"outcome"},
		),
		adTriggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_ad_triggers_total",
				Help: "Smart ad trigger requests by result",
			},
			[]string{"shown"},
		),
		favoriteToggle: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_favorite_toggles_total",
				Help: "Favorite toggles by resulting state",
			},
			[]string{"state"},
		),
		sseClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_event_stream_clients",
			Help: "Connected change stream clients",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.sessions,
		m.ratings,
		m.adTriggers,
		m.favoriteToggle,
		m.sseClients,
	)
	return m
}
