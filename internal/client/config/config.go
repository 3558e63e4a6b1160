package config

import (
	"fmt"
	"time"

	"github.com/k4jlpg/inventory/internal/filex"
)

// Config holds runtime settings for the inventory client.
//
// Units: ProbeTimeout, RequestTimeout and OnlineCheckInterval are
// time.Duration values (e.g., 2*time.Second).
type Config struct {
	APIBaseURL          string
	ServiceKey          string
	CacheDBPath         string
	SettingsDBPath      string
	ProbeTimeout        time.Duration
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	HashCredentials     bool
	LogBackend          string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.ServiceKey = ""
	c.CacheDBPath = "k4j_cache.db"
	c.SettingsDBPath = DefaultSettingsPath()
	c.ProbeTimeout = 2 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.HashCredentials = false
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// DefaultSettingsPath is the per-user settings database location.
func DefaultSettingsPath() string {
	return filex.ExpandHome("~/.k4j_lpg/settings.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (optionally seeded from a dotenv file)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.validate()
	return cfg
}

// validate panics on settings no loader can reject on its own.
func (c *Config) validate() {
	if c.OnlineCheckInterval <= 0 {
		panic(fmt.Sprintf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
}
