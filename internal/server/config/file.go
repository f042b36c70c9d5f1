package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
	"github.com/dmitrijs2005/gophtasks/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig defines the configuration file layout. It uses timex.Duration
// for interval fields, which allows both "1s" strings and integer
// nanoseconds. It is pre-filled from the current Config, so keys absent
// from the file keep their values.
type FileConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	MetricsAddr      string         `json:"metrics_addr" yaml:"metrics_addr"`
	StorageDriver    string         `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	Namespace        string         `json:"namespace" yaml:"namespace"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	SecretKey        string         `json:"secret_key" yaml:"secret_key"`
	TokenFormat      string         `json:"token_format" yaml:"token_format"`
	PasswordMode     string         `json:"password_mode" yaml:"password_mode"`
	IDScheme         string         `json:"id_scheme" yaml:"id_scheme"`
	Latency          timex.Duration `json:"latency" yaml:"latency"`
	LogBackend       string         `json:"log_backend" yaml:"log_backend"`
	LogFormat        string         `json:"log_format" yaml:"log_format"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
}

func fileConfigFrom(c *Config) FileConfig {
	return FileConfig{
		EndpointAddrGRPC: c.EndpointAddrGRPC,
		MetricsAddr:      c.MetricsAddr,
		StorageDriver:    c.StorageDriver,
		DatabaseDSN:      c.DatabaseDSN,
		Namespace:        c.Namespace,
		S3RootUser:       c.S3RootUser,
		S3RootPassword:   c.S3RootPassword,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
		SecretKey:        c.SecretKey,
		TokenFormat:      c.TokenFormat,
		PasswordMode:     c.PasswordMode,
		IDScheme:         c.IDScheme,
		Latency:          timex.Duration{Duration: c.Latency},
		LogBackend:       c.LogBackend,
		LogFormat:        c.LogFormat,
		LogLevel:         c.LogLevel,
	}
}

func (fc FileConfig) apply(config *Config) {
	config.EndpointAddrGRPC = fc.EndpointAddrGRPC
	config.MetricsAddr = fc.MetricsAddr
	config.StorageDriver = fc.StorageDriver
	config.DatabaseDSN = fc.DatabaseDSN
	config.Namespace = fc.Namespace
	config.S3RootUser = fc.S3RootUser
	config.S3RootPassword = fc.S3RootPassword
	config.S3Bucket = fc.S3Bucket
	config.S3Region = fc.S3Region
	config.S3BaseEndpoint = fc.S3BaseEndpoint
	config.SecretKey = fc.SecretKey
	config.TokenFormat = fc.TokenFormat
	config.PasswordMode = fc.PasswordMode
	config.IDScheme = fc.IDScheme
	config.Latency = fc.Latency.Duration
	config.LogBackend = fc.LogBackend
	config.LogFormat = fc.LogFormat
	config.LogLevel = fc.LogLevel
}

// parseFile loads configuration values from the file named by the -c or
// -config flag. Without the flag nothing is loaded. .yaml and .yml files
// are read as YAML, everything else as JSON.
func parseFile(config *Config, args []string) error {

	path := flagx.ConfigPath(args)

	// nothing to load
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfigFrom(config)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}
