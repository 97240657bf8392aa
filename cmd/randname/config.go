package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment variable the config reads.
const envPrefix = "RANDNAME_"

// ServerConfig holds the configuration for the HTTP word service.
type ServerConfig struct {
	Addr              string `json:"addr" yaml:"addr" env:"ADDR"`
	MaxCount          int    `json:"max_count" yaml:"max_count" env:"MAX_COUNT" validate:"gte=1"`
	MaxLength         int    `json:"max_length" yaml:"max_length" env:"MAX_LENGTH" validate:"gte=1"`
	RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec" env:"REQUEST_TIMEOUT_SEC" validate:"gte=1"`
}

// S3Config holds settings for dictionaries read from s3:// URIs. Credentials
// are only read from the environment.
type S3Config struct {
	Region         string `json:"region" yaml:"region" env:"REGION"`
	Endpoint       string `json:"endpoint" yaml:"endpoint" env:"ENDPOINT" validate:"omitempty,url"`
	ForcePathStyle bool   `json:"force_path_style" yaml:"force_path_style" env:"FORCE_PATH_STYLE"`
	AccessKeyID    string `json:"-" yaml:"-" env:"ACCESS_KEY_ID"`
	SecretKey      string `json:"-" yaml:"-" env:"SECRET_KEY"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel        string        `json:"log_level" yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Count           int           `json:"count" yaml:"count" env:"COUNT" validate:"gte=1"`
	MaxAttempts     int           `json:"max_attempts" yaml:"max_attempts" env:"MAX_ATTEMPTS" validate:"gte=0"`
	Seed            uint64        `json:"seed" yaml:"seed" env:"SEED"`
	CharPolicy      string        `json:"char_policy" yaml:"char_policy" env:"CHAR_POLICY" validate:"oneof=ascii skip unicode"`
	PruneBelow      int           `json:"prune_below" yaml:"prune_below" env:"PRUNE_BELOW" validate:"gte=0"`
	OutputPath      string        `json:"output_path" yaml:"output_path" env:"OUTPUT_PATH"`
	DictionaryQuery string        `json:"dictionary_query" yaml:"dictionary_query" env:"DICTIONARY_QUERY"`
	Server          *ServerConfig `json:"server_config" yaml:"server_config" envPrefix:"SERVER_" validate:"required"`
	S3              *S3Config     `json:"s3_config" yaml:"s3_config" envPrefix:"S3_" validate:"required"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "warn",
		Count:       1,
		MaxAttempts: 1000000,
		Seed:        0,
		CharPolicy:  "ascii",
		PruneBelow:  0,
		Server: &ServerConfig{
			Addr:              "",
			MaxCount:          100,
			MaxLength:         64,
			RequestTimeoutSec: 10,
		},
		S3: &S3Config{},
	}
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig reads the configuration from a JSON or YAML file at the given
// path, chosen by extension. If the file doesn't exist, it creates one with
// default values. An empty path skips the file and uses defaults.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	// Initialize with default configurations
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = marshalConfig(path, config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Warn instead of failing, as the program can still run with defaults.
				logger.Warn("Failed to write default config file", slog.String("path", path), slog.Any("error", err))
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	// A file that names the section but leaves it empty must not unset it.
	if config.Server == nil {
		config.Server = DefaultConfig().Server
	}
	if config.S3 == nil {
		config.S3 = DefaultConfig().S3
	}

	return config, nil
}

func marshalConfig(path string, config *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

// ApplyEnv overrides config values with RANDNAME_* environment variables,
// after loading a .env file from the working directory if one exists.
func ApplyEnv(config *Config) error {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	if err := env.ParseWithOptions(config, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks every field constraint of the configuration.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
