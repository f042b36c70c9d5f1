package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// args are filtered to the flags handled here using flagx.FilterArgs, so
// -c/-config and unrelated flags do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-n", "-d", "-f", "-l", "-t", "-s", "-p", "-i", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server (empty: local storage)")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "storage namespace")
	fs.StringVar(&cfg.Storage.Driver, "d", cfg.Storage.Driver, "storage driver (memory, sqlite, postgres, s3)")
	fs.StringVar(&cfg.Storage.DSN, "f", cfg.Storage.DSN, "storage DSN")
	fs.DurationVar(&cfg.Latency, "l", cfg.Latency, "simulated register/login latency")
	fs.StringVar(&cfg.TokenFormat, "t", cfg.TokenFormat, "session token format (legacy, jwt)")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key for jwt tokens")
	fs.StringVar(&cfg.PasswordMode, "p", cfg.PasswordMode, "password mode (plain, argon2, bcrypt)")
	fs.StringVar(&cfg.IDScheme, "i", cfg.IDScheme, "id scheme (timestamp, uuid)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
