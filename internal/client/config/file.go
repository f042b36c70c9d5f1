package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/dmitrijs2005/gophtasks/internal/timex"
	"gopkg.in/yaml.v3"
)

type logConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	Format  string `json:"format" yaml:"format"`
	Level   string `json:"level" yaml:"level"`
}

// FileConfig is the DTO read from the config file. It is pre-filled from
// the current Config, so keys missing from the file keep their values.
type FileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	Namespace          string         `json:"namespace" yaml:"namespace"`
	Storage            kv.Config      `json:"storage" yaml:"storage"`
	Latency            timex.Duration `json:"latency" yaml:"latency"`
	TokenFormat        string         `json:"token_format" yaml:"token_format"`
	SecretKey          string         `json:"secret_key" yaml:"secret_key"`
	PasswordMode       string         `json:"password_mode" yaml:"password_mode"`
	IDScheme           string         `json:"id_scheme" yaml:"id_scheme"`
	Log                logConfig      `json:"log" yaml:"log"`
}

func fileConfigFrom(c *Config) FileConfig {
	return FileConfig{
		ServerEndpointAddr: c.ServerEndpointAddr,
		Namespace:          c.Namespace,
		Storage:            c.Storage,
		Latency:            timex.Duration{Duration: c.Latency},
		TokenFormat:        c.TokenFormat,
		SecretKey:          c.SecretKey,
		PasswordMode:       c.PasswordMode,
		IDScheme:           c.IDScheme,
		Log:                logConfig{Backend: c.LogBackend, Format: c.LogFormat, Level: c.LogLevel},
	}
}

func (fc FileConfig) apply(c *Config) {
	c.ServerEndpointAddr = fc.ServerEndpointAddr
	c.Namespace = fc.Namespace
	c.Storage = fc.Storage
	c.Latency = fc.Latency.Duration
	c.TokenFormat = fc.TokenFormat
	c.SecretKey = fc.SecretKey
	c.PasswordMode = fc.PasswordMode
	c.IDScheme = fc.IDScheme
	c.LogBackend = fc.Log.Backend
	c.LogFormat = fc.Log.Format
	c.LogLevel = fc.Log.Level
}

// parseFile overlays cfg with the file named by -c/-config in args. No
// flag means no file.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfigFrom(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}
