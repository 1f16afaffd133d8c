// Command canvas-mcp exposes Canvas LMS to MCP clients over stdio, and to
// plain HTTP callers through a REST facade.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bobmcallan/canvas-mcp/internal/app"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
	"github.com/bobmcallan/canvas-mcp/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// commandFlags holds the flags shared by every subcommand.
type commandFlags struct {
	*flag.FlagSet
	configFiles configPaths
}

func newCommandFlags(name string, out io.Writer) *commandFlags {
	fs := &commandFlags{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
	fs.SetOutput(out)
	fs.Var(&fs.configFiles, "config", "Configuration file path (can be specified multiple times)")
	fs.Var(&fs.configFiles, "c", "Configuration file path (shorthand)")
	return fs
}

const usage = `Usage: canvas-mcp [command] [flags]

Commands:
  start        Start the MCP server on stdio (default)
  serve-http   Start the HTTP facade and the /mcp endpoint
  config       Configure Canvas credentials interactively (-show, -clear)
  version      Print version information
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to a subcommand; a leading flag means the default command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := "start"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "start":
		return runStart(args, stderr)
	case "serve-http":
		return runServeHTTP(args, stderr)
	case "config":
		return runConfig(args, stdin, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "canvas-mcp version %s\n", common.GetFullVersion())
		return nil
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// runStart serves MCP over stdin/stdout. Logs go to stderr so stdout stays
// reserved for the protocol.
func runStart(args []string, stderr io.Writer) error {
	fs := newCommandFlags("start", stderr)
	showVersion := fs.Bool("version", false, "Print version information")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Fprintf(stderr, "canvas-mcp version %s\n", common.GetFullVersion())
		return nil
	}

	cfg, err := loadConfig(fs.configFiles)
	if err != nil {
		return err
	}
	logger := common.NewLoggerFromConfig(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	return nil
}

// runServeHTTP starts the REST facade with /mcp mounted alongside it.
func runServeHTTP(args []string, stderr io.Writer) error {
	fs := newCommandFlags("serve-http", stderr)
	serverPort := fs.Int("port", 0, "Server port (overrides config)")
	serverPortP := fs.Int("p", 0, "Server port (shorthand)")
	serverHost := fs.String("host", "", "Server host (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Shorthand takes precedence
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	cfg, err := loadConfig(fs.configFiles)
	if err != nil {
		return err
	}
	config.ApplyFlagOverrides(cfg, finalPort, *serverHost)

	logger := common.NewLoggerFromConfig(cfg.Logging)
	logger.Info().
		Int("port", cfg.Server.Port).
		Str("host", cfg.Server.Host).
		Str("config_files", fmt.Sprintf("%v", fs.configFiles)).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	srv := server.New(application)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}

// loadConfig loads explicit config files, or the first auto-discovered one.
func loadConfig(files configPaths) (*config.Config, error) {
	if len(files) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				files = append(files, path)
				break
			}
		}
	}
	cfg, err := config.LoadFromFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD fallbacks after.
// Paths are deduplicated via filepath.Abs.
func configSearchPaths() []string {
	candidates := []string{
		"canvas-mcp.toml",
		"config/canvas-mcp.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "canvas-mcp.toml"),
		filepath.Join(binDir, "config", "canvas-mcp.toml"),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}
