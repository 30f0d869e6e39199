// Package config loads the server configuration from a YAML file with
// environment variable expansion.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Backend BackendConfig `yaml:"backend"`
	Portal  PortalConfig  `yaml:"portal"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"` // "stdio", "http"
	Address   string `yaml:"address"`
}

// RedisConfig configures the cache store. When Addr is empty the server runs
// on an in-memory store, which is only suitable for a single process.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	DB       int           `yaml:"db"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// BackendConfig configures the upstream SDS Manager REST API.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`

	// APIKeyHeader is the header carrying the per-session credential.
	APIKeyHeader string `yaml:"api_key_header"`

	// Timeout applies to status polls and standard calls, CRUDTimeout to
	// short CRUD calls, SubmitTimeout to the multipart import submission.
	Timeout       time.Duration `yaml:"timeout"`
	CRUDTimeout   time.Duration `yaml:"crud_timeout"`
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
}

// PortalConfig configures the browser-facing portal that hosts the login and
// upload forms. The server only generates URLs pointing at it.
type PortalConfig struct {
	Domain string `yaml:"domain"`
}

// Load reads configuration from a file. The path comes from command line
// arguments, controlled by the administrator.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by admin
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if cfg.Portal.Domain == "" {
		return nil, fmt.Errorf("portal.domain is required")
	}

	return &cfg, nil
}

// Default returns a configuration built entirely from defaults and
// environment variables, for running without a config file.
func Default() *Config {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Backend: BackendConfig{
			BaseURL: os.Getenv("BACKEND_URL"),
		},
		Portal: PortalConfig{
			Domain: os.Getenv("PORTAL_DOMAIN"),
		},
	}
	applyDefaults(cfg)
	return cfg
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "sds-manager"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "stdio"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Backend.APIKeyHeader == "" {
		cfg.Backend.APIKeyHeader = "X-MCP-API-KEY"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Backend.CRUDTimeout == 0 {
		cfg.Backend.CRUDTimeout = 10 * time.Second
	}
	if cfg.Backend.SubmitTimeout == 0 {
		cfg.Backend.SubmitTimeout = 10 * time.Second
	}
}
