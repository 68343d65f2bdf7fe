package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dmitrijs2005/gzapadmin/internal/flagx"
	"github.com/dmitrijs2005/gzapadmin/internal/timex"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// It relies on timex.Duration so files can specify intervals either as
// strings like "3s" or (JSON only) as integer nanoseconds. Zero values are
// treated as "not set".
type FileConfig struct {
	APIBaseURL              string         `json:"api_base_url" toml:"api_base_url"`
	StateDBPath             string         `json:"state_db_path" toml:"state_db_path"`
	OnlineCheckInterval     timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	PollInterval            timex.Duration `json:"poll_interval" toml:"poll_interval"`
	IdleTimeout             timex.Duration `json:"idle_timeout" toml:"idle_timeout"`
	PairingCooldown         timex.Duration `json:"pairing_cooldown" toml:"pairing_cooldown"`
	RequestTimeout          timex.Duration `json:"request_timeout" toml:"request_timeout"`
	RateLimit               float64        `json:"rate_limit" toml:"rate_limit"`
	HealthAddr              string         `json:"health_addr" toml:"health_addr"`
	FailOpenOnIdentityError *bool          `json:"fail_open_on_identity_error" toml:"fail_open_on_identity_error"`
	LogLevel                string         `json:"log_level" toml:"log_level"`
}

// decodeFile picks the decoder from the extension: .toml uses go-toml,
// anything else is read as JSON.
func decodeFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Without the flag nothing happens.
//
// Panics on read or decode errors (caller should recover if desired).
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := decodeFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.StateDBPath != "" {
		cfg.StateDBPath = fc.StateDBPath
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.PollInterval.Duration > 0 {
		cfg.PollInterval = fc.PollInterval.Duration
	}
	if fc.IdleTimeout.Duration > 0 {
		cfg.IdleTimeout = fc.IdleTimeout.Duration
	}
	if fc.PairingCooldown.Duration > 0 {
		cfg.PairingCooldown = fc.PairingCooldown.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RateLimit > 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.HealthAddr != "" {
		cfg.HealthAddr = fc.HealthAddr
	}
	if fc.FailOpenOnIdentityError != nil {
		cfg.FailOpenOnIdentityError = *fc.FailOpenOnIdentityError
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
