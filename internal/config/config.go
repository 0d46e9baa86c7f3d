package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds settings from ~/.config/cwlogs-mcp/config.yaml overlaid by the environment.
// Credentials come only from the environment.
type Config struct {
	AccessKeyID     string `yaml:"-" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"-" env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `yaml:"-" env:"AWS_SESSION_TOKEN"`

	DefaultRegion string `yaml:"default_region" env:"AWS_REGION"`
	Transport     string `yaml:"transport" env:"CWLOGS_MCP_TRANSPORT"`
	HTTPAddr      string `yaml:"http_addr" env:"CWLOGS_MCP_HTTP_ADDR"`
	LogLevel      string `yaml:"log_level" env:"CWLOGS_MCP_LOG_LEVEL"`
}

// Overrides carries CLI flag values. Empty fields leave the config untouched.
type Overrides struct {
	Region    string
	Transport string
	HTTPAddr  string
	LogLevel  string
}

// DefaultPath returns the config file location, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cwlogs-mcp", "config.yaml")
}

// Load reads the default config file and overlays the process environment.
func Load() (*Config, error) {
	return LoadFile(DefaultPath(), Environ())
}

// LoadFile reads path (missing file is fine) and overlays environment from environ.
func LoadFile(path string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = "localhost:8081"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over file and environment.
func (c *Config) Merge(o Overrides) {
	if o.Region != "" {
		c.DefaultRegion = o.Region
	}
	if o.Transport != "" {
		c.Transport = o.Transport
	}
	if o.HTTPAddr != "" {
		c.HTTPAddr = o.HTTPAddr
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate reports every missing required setting.
func (c *Config) Validate() error {
	var missing []string
	if c.AccessKeyID == "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if c.DefaultRegion == "" {
		missing = append(missing, "AWS_REGION")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", c.Transport)
	}
	return nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
