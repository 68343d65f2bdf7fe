package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the console's environment variables.
const EnvPrefix = "GZAP"

// envConfig mirrors Config with pointer fields so that only variables that
// are actually set override earlier values.
type envConfig struct {
	APIBaseURL              *string        `envconfig:"API_URL"`
	StateDBPath             *string        `envconfig:"STATE_DB"`
	OnlineCheckInterval     *time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	PollInterval            *time.Duration `envconfig:"POLL_INTERVAL"`
	IdleTimeout             *time.Duration `envconfig:"IDLE_TIMEOUT"`
	PairingCooldown         *time.Duration `envconfig:"PAIRING_COOLDOWN"`
	RequestTimeout          *time.Duration `envconfig:"REQUEST_TIMEOUT"`
	RateLimit               *float64       `envconfig:"RATE_LIMIT"`
	HealthAddr              *string        `envconfig:"HEALTH_ADDR"`
	FailOpenOnIdentityError *bool          `envconfig:"FAIL_OPEN"`
	LogLevel                *string        `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays Config with GZAP_* variables. A .env file in the working
// directory is loaded first when present; real environment variables win
// over it.
//
// Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}
	ec.apply(cfg)
}

func (ec *envConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, ec.APIBaseURL)
	setIf(&cfg.StateDBPath, ec.StateDBPath)
	setIf(&cfg.OnlineCheckInterval, ec.OnlineCheckInterval)
	setIf(&cfg.PollInterval, ec.PollInterval)
	setIf(&cfg.IdleTimeout, ec.IdleTimeout)
	setIf(&cfg.PairingCooldown, ec.PairingCooldown)
	setIf(&cfg.RequestTimeout, ec.RequestTimeout)
	setIf(&cfg.RateLimit, ec.RateLimit)
	setIf(&cfg.HealthAddr, ec.HealthAddr)
	setIf(&cfg.FailOpenOnIdentityError, ec.FailOpenOnIdentityError)
	setIf(&cfg.LogLevel, ec.LogLevel)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
