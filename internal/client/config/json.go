package config

import (
	"encoding/json"
	"os"

	"github.com/k4jlpg/inventory/internal/flagx"
	"github.com/k4jlpg/inventory/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields that are absent from the file leave the Config as is.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	ServiceKey          string         `json:"service_key"`
	CacheDBPath         string         `json:"cache_db_path"`
	SettingsDBPath      string         `json:"settings_db_path"`
	ProbeTimeout        timex.Duration `json:"probe_timeout"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	HashCredentials     *bool          `json:"hash_credentials"`
	LogBackend          string         `json:"log_backend"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. It panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.ServiceKey, jc.ServiceKey)
	setString(&cfg.CacheDBPath, jc.CacheDBPath)
	setString(&cfg.SettingsDBPath, jc.SettingsDBPath)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.ProbeTimeout.Duration > 0 {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.HashCredentials != nil {
		cfg.HashCredentials = *jc.HashCredentials
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
