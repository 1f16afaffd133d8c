package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
	"github.com/bobmcallan/canvas-mcp/internal/interfaces"
	"github.com/bobmcallan/canvas-mcp/internal/storage"
)

// runConfig stores Canvas credentials in the local settings store.
func runConfig(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newCommandFlags("config", stderr)
	show := fs.Bool("show", false, "Print the stored settings with the token masked")
	clearAll := fs.Bool("clear", false, "Delete the stored settings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs.configFiles)
	if err != nil {
		return err
	}
	mgr, err := storage.NewStorageManager(common.NewSilentLogger(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer mgr.Close()

	ctx := context.Background()
	kv := mgr.KeyValueStorage()
	switch {
	case *show:
		return showSettings(ctx, kv, mgr.Path(), stdout)
	case *clearAll:
		return clearSettings(ctx, kv, stdout)
	default:
		return configure(ctx, kv, mgr.Path(), stdin, stdout)
	}
}

// configure prompts for the domain (defaulting to the stored one) and the token.
func configure(ctx context.Context, kv interfaces.KeyValueStorage, path string, stdin io.Reader, stdout io.Writer) error {
	fmt.Fprintln(stdout, "\nCanvas MCP Server Configuration")

	storedDomain, _ := kv.Get(ctx, config.KeyDomain)
	scanner := bufio.NewScanner(stdin)

	domain, err := prompt(scanner, stdout, "Canvas Domain (e.g., uide.instructure.com)", storedDomain)
	if err != nil {
		return err
	}
	token, err := prompt(scanner, stdout, "Canvas API Token", "")
	if err != nil {
		return err
	}

	if err := kv.Set(ctx, config.KeyDomain, domain); err != nil {
		return err
	}
	if err := kv.Set(ctx, config.KeyToken, token); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nConfiguration saved successfully!")
	fmt.Fprintf(stdout, "Saved to: %s\n", path)
	return nil
}

// prompt reads one non-empty line, re-asking on empty input. An empty line
// accepts def when def is set.
func prompt(scanner *bufio.Scanner, stdout io.Writer, label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(stdout, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(stdout, "%s: ", label)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", errors.New("input closed before configuration was complete")
		}
		value := strings.TrimSpace(scanner.Text())
		if value == "" {
			value = def
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(stdout, "A value is required.")
	}
}

func showSettings(ctx context.Context, kv interfaces.KeyValueStorage, path string, stdout io.Writer) error {
	all, err := kv.GetAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Settings store: %s\n", path)
	fmt.Fprintf(stdout, "%s=%s\n", config.KeyDomain, orUnset(all[config.KeyDomain]))
	fmt.Fprintf(stdout, "%s=%s\n", config.KeyToken, orUnset(maskToken(all[config.KeyToken])))
	if saved := lastSaved(ctx, kv); !saved.IsZero() {
		fmt.Fprintf(stdout, "Last saved: %s\n", saved.Format(time.RFC3339))
	}
	return nil
}

// lastSaved is the most recent save time of the Canvas settings, or zero when
// the store does not track it.
func lastSaved(ctx context.Context, kv interfaces.KeyValueStorage) time.Time {
	tracked, ok := kv.(interface {
		UpdatedAt(ctx context.Context, key string) (time.Time, error)
	})
	if !ok {
		return time.Time{}
	}
	var latest time.Time
	for _, key := range []string{config.KeyDomain, config.KeyToken} {
		if at, err := tracked.UpdatedAt(ctx, key); err == nil && at.After(latest) {
			latest = at
		}
	}
	return latest
}

func clearSettings(ctx context.Context, kv interfaces.KeyValueStorage, stdout io.Writer) error {
	for _, key := range []string{config.KeyDomain, config.KeyToken} {
		if err := kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, "Stored Canvas settings cleared.")
	return nil
}

// maskToken keeps the last four characters of long tokens.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
