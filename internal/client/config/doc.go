// Package config loads runtime configuration for the gzapctl console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: an optional .env file, then GZAP_* variables (see parseEnv).
//  3. Optional config file selected via -c or -config, JSON or TOML by
//     extension (see parseFile).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     relay REST base URL
//	-i int        online status check interval (seconds)
//	-p int        connection poll interval (seconds)
//	-d string     local state database path
//	-l string     log level
//	-g string     gRPC health address
//	-fail-closed  block protected screens when the identity fetch fails
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" (JSON and
// TOML) or integer nanoseconds (JSON):
//
//	{
//	  "api_base_url": "http://127.0.0.1:3333",
//	  "online_check_interval": "3s",
//	  "poll_interval": "10s",
//	  "fail_open_on_identity_error": false
//	}
//
// Environment
//
//	GZAP_API_URL, GZAP_STATE_DB, GZAP_ONLINE_CHECK_INTERVAL, GZAP_POLL_INTERVAL,
//	GZAP_IDLE_TIMEOUT, GZAP_PAIRING_COOLDOWN, GZAP_REQUEST_TIMEOUT,
//	GZAP_RATE_LIMIT, GZAP_HEALTH_ADDR, GZAP_FAIL_OPEN, GZAP_LOG_LEVEL
package config
