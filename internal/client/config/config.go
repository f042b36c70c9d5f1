package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/kv"
)

// Config holds runtime settings for the task manager CLI.
type Config struct {
	// ServerEndpointAddr selects the remote backend; empty means the CLI
	// opens Storage itself.
	ServerEndpointAddr string
	Namespace          string
	Storage            kv.Config

	Latency      time.Duration
	TokenFormat  string
	SecretKey    string
	PasswordMode string
	IDScheme     string

	LogBackend string
	LogFormat  string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = ""
	c.Namespace = ""
	c.Storage = kv.Config{Driver: kv.DriverSQLite, DSN: "gophtasks.db"}
	c.Latency = 0
	c.TokenFormat = "legacy"
	c.SecretKey = ""
	c.PasswordMode = "plain"
	c.IDScheme = "timestamp"
	c.LogBackend = "slog"
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// Load builds a Config from args (without the program name): defaults,
// then the config file, then flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on a bad file or flag.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
