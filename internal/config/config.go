package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/arcade/config.yaml"

// Config holds all arcade configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Player    PlayerConfig    `yaml:"player"`
	Ads       AdsConfig       `yaml:"ads"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type StorageConfig struct {
	// Driver selects the backend: sqlite, badger, redis or memory.
	Driver            string `yaml:"driver"`
	Path              string `yaml:"path"`
	SQLiteFile        string `yaml:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
	BadgerDir         string `yaml:"badger_dir"`
	RedisAddr         string `yaml:"redis_addr"`
	RedisDB           int    `yaml:"redis_db"`
	RedisChannel      string `yaml:"redis_channel"`
	Profile           string `yaml:"profile"`
}

type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	RatingRPS       float64  `yaml:"rating_rps"`
	RatingBurst     int      `yaml:"rating_burst"`
	ShutdownSeconds int      `yaml:"shutdown_seconds"`
}

type PlayerConfig struct {
	RatingUnlockSeconds int `yaml:"rating_unlock_seconds"`
	SessionTTLMinutes   int `yaml:"session_ttl_minutes"`
	RecentLimit         int `yaml:"recent_limit"`
	TopRatedMin         int `yaml:"top_rated_min"`
	TopRatedLimit       int `yaml:"top_rated_limit"`
}

type AdsConfig struct {
	DirectLinkURL   string   `yaml:"direct_link_url"`
	CooldownSeconds int      `yaml:"cooldown_seconds"`
	Networks        []string `yaml:"networks"`
	PanicURL        string   `yaml:"panic_url"`
}

type AnalyticsConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// RatingUnlock returns the play time required before a session may rate.
func (p PlayerConfig) RatingUnlock() time.Duration {
	return time.Duration(p.RatingUnlockSeconds) * time.Second
}

// SessionTTL returns how long an idle play session is kept.
func (p PlayerConfig) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLMinutes) * time.Minute
}

// Cooldown returns the minimum gap between two smart ads.
func (a AdsConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownSeconds) * time.Second
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Storage.Profile == "" {
		cfg.Storage.Profile = defaultProfile
	}
	if len(cfg.Ads.Networks) == 0 {
		cfg.Ads.Networks = DefaultAdNetworks()
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
