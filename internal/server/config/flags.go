package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/flagx"
)

// parseFlags populates selected relay Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":3333")
//	-g string   gRPC health bind address (empty disables)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-w int      pairing delay, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the REST API")
	fs.StringVar(&config.HealthAddr, "g", config.HealthAddr, "address and port to run the gRPC health service")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	pairDelay := fs.Int("w", int(config.PairDelay.Seconds()), "pairing delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.PairDelay = time.Duration(*pairDelay) * time.Second
}
