package config

import (
	"encoding/json"
	"os"

	"github.com/k4jlpg/inventory/internal/flagx"
	"github.com/k4jlpg/inventory/internal/timex"
)

// JsonConfig is the on-disk shape of the dev server configuration. Duration
// fields accept "1m" style strings and integer nanoseconds.
type JsonConfig struct {
	ListenAddr                  string         `json:"listen_addr"`
	SecretKey                   string         `json:"secret_key"`
	ServiceKey                  string         `json:"service_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RequestsPerMinute           *int           `json:"requests_per_minute"`
	LogBackend                  string         `json:"log_backend"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into cfg. Fields missing from the file keep their current value.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(cfg *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		cfg.ListenAddr = c.ListenAddr
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.ServiceKey != "" {
		cfg.ServiceKey = c.ServiceKey
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RequestsPerMinute != nil {
		cfg.RequestsPerMinute = *c.RequestsPerMinute
	}
	if c.LogBackend != "" {
		cfg.LogBackend = c.LogBackend
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}
