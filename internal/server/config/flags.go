package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-m string     metrics bind address; empty disables /metrics
//	-k string     storage driver (memory, sqlite, postgres, s3)
//	-d string     storage DSN
//	-n string     default namespace
//	-s string     JWT HMAC secret key
//	-t string     session token format (legacy, jwt)
//	-w string     password mode (plain, argon2, bcrypt)
//	-i string     id scheme (timestamp, uuid)
//	-l duration   simulated register/login latency
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-v string     log level
//
// args are first filtered to the flags recognized here using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-k", "-d", "-n", "-s", "-t", "-w", "-i", "-l", "-u", "-p", "-b", "-g", "-e", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&config.StorageDriver, "k", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Namespace, "n", config.Namespace, "default namespace")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenFormat, "t", config.TokenFormat, "session token format")
	fs.StringVar(&config.PasswordMode, "w", config.PasswordMode, "password mode")
	fs.StringVar(&config.IDScheme, "i", config.IDScheme, "id scheme")
	fs.DurationVar(&config.Latency, "l", config.Latency, "simulated register/login latency")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	return fs.Parse(args)
}
