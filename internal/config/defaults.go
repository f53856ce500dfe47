package config

const defaultProfile = "default"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:            "sqlite",
			Path:              "~/.config/arcade",
			SQLiteFile:        "arcade.db",
			SQLiteJournalMode: "wal",
			BadgerDir:         "kv",
			RedisAddr:         "127.0.0.1:6379",
			RedisDB:           0,
			RedisChannel:      "arcade:changes",
			Profile:           defaultProfile,
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8742,
			AllowedOrigins:  []string{"*"},
			RatingRPS:       0.2,
			RatingBurst:     3,
			ShutdownSeconds: 10,
		},
		Player: PlayerConfig{
			RatingUnlockSeconds: 30,
			SessionTTLMinutes:   360,
			RecentLimit:         3,
			TopRatedMin:         3,
			TopRatedLimit:       6,
		},
		Ads: AdsConfig{
			DirectLinkURL:   "https://otieu.com/4/10551637",
			CooldownSeconds: 60,
			Networks:        DefaultAdNetworks(),
			PanicURL:        "https://classroom.google.com/",
		},
		Analytics: AnalyticsConfig{
			WebhookURL:     "",
			TimeoutSeconds: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "pretty",
			File:   "",
		},
	}
}
