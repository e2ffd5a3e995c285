// Package config loads pane-remote configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANE_REMOTE_*, OTEL_EXPORTER_OTLP_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .pane-remote.yaml in current directory
//  2. ~/.config/pane-remote/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultMaxPayloadBytes caps a single request datagram.
const DefaultMaxPayloadBytes = 64 * 1024

const defaultTimeout = 5 * time.Second

// Config holds all pane-remote configuration.
type Config struct {
	// Socket is the receiver's unixgram socket path. Empty means the
	// per-user default.
	Socket string `yaml:"socket" env:"PANE_REMOTE_SOCKET"`

	// Mux forces a multiplexer backend ("tmux"); empty auto-detects.
	Mux string `yaml:"mux" env:"PANE_REMOTE_MUX"`

	// Timeout bounds how long a client waits for a response, as a Go
	// duration string. "0" or "off" waits forever.
	Timeout string `yaml:"timeout" env:"PANE_REMOTE_TIMEOUT"`

	MaxPayloadBytes int `yaml:"max_payload_bytes" env:"PANE_REMOTE_MAX_PAYLOAD_BYTES"`

	LogLevel  string `yaml:"log_level" env:"PANE_REMOTE_LOG_LEVEL"`
	LogPretty bool   `yaml:"log_pretty" env:"PANE_REMOTE_LOG_PRETTY"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELHeaders  string `yaml:"otel_headers" env:"OTEL_EXPORTER_OTLP_HEADERS"` // Comma-separated key=value pairs

	// TimeoutDuration is Timeout parsed (not from YAML, set after loading).
	TimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Timeout:         defaultTimeout.String(),
		TimeoutDuration: defaultTimeout,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		LogLevel:        "info",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		if err := parseFile(cfg, data); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFile applies the keys present in data onto cfg.
func parseFile(cfg *Config, data []byte) error {
	return yaml.Unmarshal(data, cfg)
}

// ParseTimeout parses a client timeout. "0", "off" and "disable" mean no
// timeout; empty means the default.
func ParseTimeout(s string) (time.Duration, error) {
	return parseDurationOrDisable(s, defaultTimeout)
}

func (c *Config) finish() error {
	var err error
	c.TimeoutDuration, err = ParseTimeout(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if c.MaxPayloadBytes <= 0 {
		c.MaxPayloadBytes = DefaultMaxPayloadBytes
	}
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".pane-remote.yaml"); err == nil {
		return ".pane-remote.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pane-remote", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// parseDurationOrDisable parses a duration string. "0", "off", "disable" return 0.
// Empty string returns the fallback value.
func parseDurationOrDisable(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	if s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
