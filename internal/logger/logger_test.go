package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/arcade/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.in), "level %q", tc.in)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	l.Info().Str("game", "slope").Msg("played")
	l.Debug().Msg("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "played", line["message"])
	assert.Equal(t, "slope", line["game"])
	assert.Equal(t, "arcade", line["service"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.log")
	l, closer, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path}, nil)
	require.NoError(t, err)

	l.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
