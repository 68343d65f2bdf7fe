package config

import "time"

// Config holds runtime settings for the gzapctl console.
//
// Units: every interval is a time.Duration. IdleTimeout and PairingCooldown
// are counted down in whole seconds.
type Config struct {
	APIBaseURL          string
	StateDBPath         string
	OnlineCheckInterval time.Duration
	PollInterval        time.Duration
	IdleTimeout         time.Duration
	PairingCooldown     time.Duration
	RequestTimeout      time.Duration
	// RateLimit caps outgoing requests per second; zero disables the limiter.
	RateLimit float64
	// HealthAddr switches the online watcher to a gRPC health checker.
	HealthAddr              string
	FailOpenOnIdentityError bool
	LogLevel                string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:3333"
	c.StateDBPath = "gzap-state.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.PollInterval = 10 * time.Second
	c.IdleTimeout = 1800 * time.Second
	c.PairingCooldown = 180 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 5
	c.HealthAddr = ""
	c.FailOpenOnIdentityError = true
	c.LogLevel = "info"
}

// IdleSeconds is IdleTimeout in whole seconds.
func (c *Config) IdleSeconds() int {
	return int(c.IdleTimeout / time.Second)
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the config file (if any) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
