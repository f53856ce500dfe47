package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/runnerr0/arcade/internal/storage"
)

const heartbeatInterval = 30 * time.Second

type changeEvent struct {
	Key string `json:"key"`
}

// handleEvents streams a "change" event whenever a key of the request's
// profile is written, locally or by another process sharing the backend.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.profile(w, r) == nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", "streaming not supported")
		return
	}

	changes := make(chan string, 16)
	scoped := storage.NewScoped(s.store, s.profileName(r))
	unwatch := scoped.Watch("", func(key string) {
		select {
		case changes <- key:
		default:
		}
	})
	defer unwatch()

	s.metrics.sseClients.Inc()
	defer s.metrics.sseClients.Dec()

	if err := writeEvent(w, rc, "connected", map[string]string{"profile": scoped.Profile()}); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case key := <-changes:
			if err := writeEvent(w, rc, "change", changeEvent{Key: key}); err != nil {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return rc.Flush()
}
