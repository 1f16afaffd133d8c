package config

import (
	"os"
	"path/filepath"
)

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			Host: "0.0.0.0",
		},
		Canvas: CanvasConfig{
			PerPage: 100,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: DefaultStorePath(),
			},
		},
	}
}

// DefaultStorePath is the per-user settings directory, so `canvas-mcp config`
// and a server started by an MCP client agree regardless of working directory.
// It falls back to a relative path only when the OS reports no config dir.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "data", "canvas-mcp")
	}
	return filepath.Join(dir, "canvas-mcp")
}
