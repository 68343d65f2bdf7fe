package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type envConfig struct {
	HTTPAddr                    *string        `envconfig:"ADDR"`
	HealthAddr                  *string        `envconfig:"HEALTH_ADDR"`
	SecretKey                   *string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration *time.Duration `envconfig:"TOKEN_TTL"`
	PairDelay                   *time.Duration `envconfig:"PAIR_DELAY"`
	LogLevel                    *string        `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays Config with MOCKRELAY_* variables, loading .env first
// when present. Panics on malformed values.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := envconfig.Process("MOCKRELAY", &ec); err != nil {
		panic(err)
	}

	if ec.HTTPAddr != nil {
		cfg.HTTPAddr = *ec.HTTPAddr
	}
	if ec.HealthAddr != nil {
		cfg.HealthAddr = *ec.HealthAddr
	}
	if ec.SecretKey != nil {
		cfg.SecretKey = *ec.SecretKey
	}
	if ec.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = *ec.AccessTokenValidityDuration
	}
	if ec.PairDelay != nil {
		cfg.PairDelay = *ec.PairDelay
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
