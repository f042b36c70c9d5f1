// Package config loads runtime configuration for the task manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the task manager server; empty uses local stores
//	-n string     storage namespace (profile)
//	-d string     storage driver: memory, sqlite, postgres or s3
//	-f string     storage DSN (sqlite file or postgres URL)
//	-l duration   simulated latency of register/login
//	-t string     session token format: legacy or jwt
//	-s string     secret key for jwt tokens
//	-p string     password mode: plain, argon2 or bcrypt
//	-i string     id scheme: timestamp or uuid
//	-v string     log level
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "1s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "",
//	  "storage": {"driver": "sqlite", "dsn": "gophtasks.db"},
//	  "latency": "1s",
//	  "log": {"level": "debug"}
//	}
package config
