// Package analytics sends best-effort visit notifications to an outside
// webhook. Nothing here ever reports failure to the caller.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/config"
)

// Visit describes one page or game view.
type Visit struct {
	Profile   string    `json:"profile"`
	Path      string    `json:"path"`
	GameID    string    `json:"gameId,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	At        time.Time `json:"at"`
}

type message struct {
	Content string `json:"content"`
	Visit   Visit  `json:"visit"`
}

// Pinger posts visits to a webhook URL. A Pinger with no URL does nothing.
type Pinger struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger

	wg sync.WaitGroup
}

// NewPinger returns a Pinger for cfg. An empty webhook URL disables it.
func NewPinger(cfg config.AnalyticsConfig, logger zerolog.Logger) *Pinger {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Pinger{
		url:     cfg.WebhookURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger.With().Str("component", "analytics").Logger(),
	}
}

// Enabled reports whether a webhook is configured.
func (p *Pinger) Enabled() bool {
	return p.url != ""
}

// Ping sends v in the background. The request outlives ctx's cancellation
// but not the pinger's timeout.
func (p *Pinger) Ping(ctx context.Context, v Visit) {
	if !p.Enabled() {
		return
	}
	if v.At.IsZero() {
		v.At = time.Now().UTC()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		if err := p.send(sendCtx, v); err != nil {
			p.logger.Debug().Err(err).Str("path", v.Path).Msg("visit ping failed")
		}
	}()
}

// Wait blocks until every in-flight ping has finished.
func (p *Pinger) Wait() {
	p.wg.Wait()
}

func (p *Pinger) send(ctx context.Context, v Visit) error {
	body, err := json.Marshal(message{
		Content: fmt.Sprintf("visit %s (profile %s)", v.Path, v.Profile),
		Visit:   v,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
