package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Canvas  CanvasConfig         `toml:"canvas"`
	Storage StorageConfig        `toml:"storage"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP facade settings.
type ServerConfig struct {
	Port      int    `toml:"port"`
	Host      string `toml:"host"`
	PublicURL string `toml:"public_url"` // advertised in openapi.json servers
	Contact   string `toml:"contact"`    // shown on /privacy
}

// CanvasConfig contains the backend connection settings.
// Domain and Token here are the lowest-priority source; see ResolveCredentials.
type CanvasConfig struct {
	Domain  string `toml:"domain"`
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"`
	PerPage int    `toml:"per_page"`
}

// GetTimeout parses the configured timeout. Zero (unset or unparseable)
// means no client timeout.
func (c *CanvasConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// godotenv never overrides variables already present in the environment.
	_ = godotenv.Load()

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Credentials are not copied here; ResolveCredentials reads them directly so
// that the env > store > file precedence holds.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("HTTP_HOST"); host != "" {
		config.Server.Host = host
	}
	if dataPath := os.Getenv("CANVAS_MCP_DATA_PATH"); dataPath != "" {
		config.Storage.Badger.Path = dataPath
	}
	if level := os.Getenv("CANVAS_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
