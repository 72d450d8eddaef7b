package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/memoria/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-k", "-r", "-m", "-w", "-l"}

// parseFlags overlays command-line flags onto config.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-r string   Redis address for login throttling
//	-m int      login attempts allowed per window
//	-w int      login throttling window, minutes
//	-l string   log level
//
// Only the flags above are parsed; the JSON file flags are handled by
// parseJson.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	tokenTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address for login throttling")
	fs.IntVar(&config.LoginMaxAttempts, "m", config.LoginMaxAttempts, "login attempts per window")
	window := fs.Int("w", int(config.LoginAttemptWindow.Minutes()), "login throttling window (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*tokenTTL) * time.Minute
		case "w":
			config.LoginAttemptWindow = time.Duration(*window) * time.Minute
		}
	})

	return nil
}
