// Package app wires configuration, the Canvas client and every transport
// into one application value.
package app

import (
	"context"
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
	"github.com/bobmcallan/canvas-mcp/internal/handlers"
	"github.com/bobmcallan/canvas-mcp/internal/mcp"
	"github.com/bobmcallan/canvas-mcp/internal/resources"
	"github.com/bobmcallan/canvas-mcp/internal/storage"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Canvas    *canvas.Client
	Registry  *tools.Registry
	Resources *resources.Reader
	MCPServer *mcpserver.MCPServer

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	PrivacyHandler *handlers.PrivacyHandler
	VersionHandler *handlers.VersionHandler
	OpenAPIHandler *handlers.OpenAPIHandler
	CanvasHandler  *handlers.CanvasHandler
	ToolsHandler   *handlers.ToolsHandler
	MCPHandler     *mcp.Handler
}

// New resolves credentials and initializes the application.
func New(ctx context.Context, cfg *config.Config, logger *common.Logger) (*App, error) {
	creds, err := LoadCredentials(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithCredentials(cfg, creds, logger)
}

// LoadCredentials reads the settings store once and releases it, so that
// several stdio processes and `canvas-mcp config` never contend for the
// database lock. A store that was never written is not created here.
func LoadCredentials(ctx context.Context, cfg *config.Config, logger *common.Logger) (config.Credentials, error) {
	if _, err := os.Stat(cfg.Storage.Badger.Path); err != nil {
		logger.Debug().Str("path", cfg.Storage.Badger.Path).Msg("no settings store, using environment and config file only")
		return config.ResolveCredentials(ctx, nil, cfg)
	}
	mgr, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		logger.Warn().Str("error", err.Error()).Msg("settings store unavailable, using environment and config file only")
		return config.ResolveCredentials(ctx, nil, cfg)
	}
	defer mgr.Close()
	return config.ResolveCredentials(ctx, mgr.KeyValueStorage(), cfg)
}

// NewWithCredentials initializes the application with already resolved credentials.
func NewWithCredentials(cfg *config.Config, creds config.Credentials, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	client, err := canvas.NewClient(creds.Domain, creds.Token, logger,
		canvas.WithTimeout(cfg.Canvas.GetTimeout()),
		canvas.WithPerPage(cfg.Canvas.PerPage),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas client: %w", err)
	}
	a.Canvas = client

	a.Registry, err = tools.NewRegistry(client, logger, tools.Catalog()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	a.Resources = resources.NewReader(client, logger)
	a.MCPServer = mcp.NewServer(a.Registry, a.Resources, client.BaseURL(), logger)

	a.initHandlers()

	logger.Info().
		Str("canvas_api", client.BaseURL()).
		Int("tools", a.Registry.Len()).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.PrivacyHandler = handlers.NewPrivacyHandler(a.Config.Server.Contact)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.OpenAPIHandler = handlers.NewOpenAPIHandler(a.Config.Server.PublicURL)
	a.CanvasHandler = handlers.NewCanvasHandler(a.Canvas, a.Logger)
	a.ToolsHandler = handlers.NewToolsHandler(a.Registry, a.Logger)
	a.MCPHandler = mcp.NewHandler(a.MCPServer, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// ServeStdio runs the MCP server on stdin/stdout until ctx is done.
func (a *App) ServeStdio(ctx context.Context) error {
	a.Logger.Info().Msg("MCP stdio server starting")
	return mcp.ServeStdio(ctx, a.MCPServer)
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
