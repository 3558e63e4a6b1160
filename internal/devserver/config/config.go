// Package config handles configuration for the development remote service,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the dev server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     per-process secret, so tokens do not survive a restart.
//   - ServiceKey: static key accepted on bootstrap calls. Empty disables the check.
//   - AccessTokenValidityDuration: access token lifetime.
//   - RequestsPerMinute: per-IP rate limit, 0 disables it.
type Config struct {
	ListenAddr                  string
	SecretKey                   string
	ServiceKey                  string
	AccessTokenValidityDuration time.Duration
	RequestsPerMinute           int
	LogBackend                  string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.SecretKey = ""
	c.ServiceKey = ""
	c.AccessTokenValidityDuration = 12 * time.Hour
	c.RequestsPerMinute = 300
	c.LogBackend = "zap"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
