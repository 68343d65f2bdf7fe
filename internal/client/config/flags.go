package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     relay REST base URL
//	-i int        online check interval in seconds
//	-p int        connection poll interval in seconds
//	-d string     local state database path
//	-l string     log level (debug, info, warn, error)
//	-g string     gRPC health address (enables the gRPC checker)
//	-fail-closed  redirect to the login screen when the identity fetch fails
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgsWithBools, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:],
		[]string{"-a", "-i", "-p", "-d", "-l", "-g", "-fail-closed"},
		[]string{"-fail-closed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "relay REST base URL")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	pollInterval := fs.Int("p", int(cfg.PollInterval.Seconds()), "connection poll interval (in seconds)")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "local state database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "gRPC health address")
	failClosed := fs.Bool("fail-closed", !cfg.FailOpenOnIdentityError, "block protected screens when the identity fetch fails")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	cfg.FailOpenOnIdentityError = !*failClosed
}
