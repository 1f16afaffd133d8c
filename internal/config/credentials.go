package config

import (
	"context"
	"fmt"
	"os"

	"github.com/bobmcallan/canvas-mcp/internal/interfaces"
)

// Keys under which credentials are persisted in the settings store. They
// double as the environment variable names.
const (
	KeyToken  = "CANVAS_API_TOKEN"
	KeyDomain = "CANVAS_API_DOMAIN"
)

// Credentials is the single backend credential used for the process lifetime.
type Credentials struct {
	Token  string
	Domain string
}

// ResolveSetting resolves one setting from environment, settings store, or fallback.
func ResolveSetting(ctx context.Context, kv interfaces.KeyValueStorage, key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if kv != nil {
		if v, err := kv.Get(ctx, key); err == nil && v != "" {
			return v
		}
	}
	return fallback
}

// ResolveCredentials resolves the Canvas token and domain.
// Priority: environment variable > settings store > config file.
func ResolveCredentials(ctx context.Context, kv interfaces.KeyValueStorage, cfg *Config) (Credentials, error) {
	creds := Credentials{
		Token:  ResolveSetting(ctx, kv, KeyToken, cfg.Canvas.Token),
		Domain: ResolveSetting(ctx, kv, KeyDomain, cfg.Canvas.Domain),
	}

	var missing []string
	if creds.Token == "" {
		missing = append(missing, KeyToken)
	}
	if creds.Domain == "" {
		missing = append(missing, KeyDomain)
	}
	if len(missing) > 0 {
		return creds, fmt.Errorf("missing configuration %v: run `canvas-mcp config` or set the environment variables", missing)
	}
	return creds, nil
}
