// Package config handles configuration for the development relay,
// including defaults, environment overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for mockrelay.
//
// Fields:
//   - HTTPAddr: bind address for the REST API.
//   - HealthAddr: bind address for the gRPC health service; empty disables it.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: token lifetime.
//   - PairDelay: how long after a QR code is generated the fake session connects.
//   - LogLevel: slog level name.
type Config struct {
	HTTPAddr                    string
	HealthAddr                  string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PairDelay                   time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3333"
	c.HealthAddr = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 8 * time.Hour
	c.PairDelay = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from MOCKRELAY_* environment variables and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
