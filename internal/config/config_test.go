package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "~/.config/arcade", cfg.Storage.Path)
	assert.Equal(t, "arcade.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "wal", cfg.Storage.SQLiteJournalMode)
	assert.Equal(t, "kv", cfg.Storage.BadgerDir)
	assert.Equal(t, "127.0.0.1:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "arcade:changes", cfg.Storage.RedisChannel)
	assert.Equal(t, "default", cfg.Storage.Profile)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8742, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3, cfg.Server.RatingBurst)
	assert.Equal(t, 30, cfg.Player.RatingUnlockSeconds)
	assert.Equal(t, 3, cfg.Player.RecentLimit)
	assert.Equal(t, 3, cfg.Player.TopRatedMin)
	assert.Equal(t, 6, cfg.Player.TopRatedLimit)
	assert.Equal(t, 60, cfg.Ads.CooldownSeconds)
	assert.Equal(t, "https://classroom.google.com/", cfg.Ads.PanicURL)
	assert.Empty(t, cfg.Analytics.WebhookURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30*time.Second, cfg.Player.RatingUnlock())
	assert.Equal(t, 6*time.Hour, cfg.Player.SessionTTL())
	assert.Equal(t, time.Minute, cfg.Ads.Cooldown())
	assert.Equal(t, "127.0.0.1:8742", cfg.Server.Addr())
}

func TestDefaultAdNetworksIsPopulated(t *testing.T) {
	hosts := DefaultAdNetworks()
	assert.NotEmpty(t, hosts)

	assert.Contains(t, hosts, "pagead2.googlesyndication.com")
	assert.Contains(t, hosts, "otieu.com")
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
storage:
  driver: "badger"
  profile: "kiosk"
server:
  port: 9999
player:
  rating_unlock_seconds: 10
logging:
  level: "debug"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.Equal(t, "kiosk", cfg.Storage.Profile)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Player.RatingUnlockSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "arcade.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, 60, cfg.Ads.CooldownSeconds)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644)
	require.NoError(t, err)

	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load("/tmp/nonexistent_path_12345/config.yaml")
	assert.Error(t, err)
}

func TestLoadRestoresEmptyProfileAndNetworks(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
storage:
  profile: ""
ads:
  networks: []
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Storage.Profile)
	assert.Equal(t, DefaultAdNetworks(), cfg.Ads.Networks)
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 8742, cfg.Server.Port)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.Port, cfg2.Server.Port)
	assert.Equal(t, cfg.Ads.Networks, cfg2.Ads.Networks)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
ads:
  cooldown_seconds: 120
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Ads.CooldownSeconds)
	// Other fields remain defaults
	assert.Equal(t, "https://otieu.com/4/10551637", cfg.Ads.DirectLinkURL)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/arcade")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/arcade"), got)

	got, err = ExpandPath("/var/lib/arcade")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/arcade", got)
}
