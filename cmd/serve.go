package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/notiondo/notiondo/internal/instrumentation"
	"github.com/notiondo/notiondo/internal/notion"
	"github.com/notiondo/notiondo/internal/resources"
	"github.com/notiondo/notiondo/internal/server"
	"github.com/notiondo/notiondo/internal/tools/notion_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode bool
		transport string
		httpAddr  string
		envFile   string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide Notion
database tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Configuration:
  NOTION_API_KEY and NOTION_DATABASE_ID are required, either in the
  environment or in a .env file (see --env-file). NOTION_BASE_URL and
  NOTION_VERSION override the API endpoint and version header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, httpAddr, envFile, debugMode, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file to load (default: .env in the working directory, if present)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the Prometheus metrics server (streamable-http transport only)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Address for the Prometheus metrics server")

	return cmd
}

// loadNotionConfig assembles the Notion client configuration from the
// environment, optionally seeded from a .env file. Missing credentials are
// a fatal startup condition.
func loadNotionConfig(envFile string) (notion.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return notion.Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: a .env in the working directory is optional
		_ = godotenv.Load()
	}

	config := notion.Config{
		APIKey:        os.Getenv("NOTION_API_KEY"),
		DatabaseID:    os.Getenv("NOTION_DATABASE_ID"),
		BaseURL:       os.Getenv("NOTION_BASE_URL"),
		NotionVersion: os.Getenv("NOTION_VERSION"),
	}
	if config.APIKey == "" {
		return notion.Config{}, fmt.Errorf("NOTION_API_KEY is required (set it in the environment or a .env file)")
	}
	if config.DatabaseID == "" {
		return notion.Config{}, fmt.Errorf("NOTION_DATABASE_ID is required (set it in the environment or a .env file)")
	}
	return config, nil
}

// setupLogging configures the default slog logger for the chosen transport.
// For stdio, stdout carries the protocol, so logs go to stderr and are kept
// quiet unless debug is enabled.
func setupLogging(transport string, debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	} else if transport == "stdio" {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func runServe(transport, httpAddr, envFile string, debugMode bool, metricsConfig MetricsConfig) error {
	setupLogging(transport, debugMode)

	notionConfig, err := loadNotionConfig(envFile)
	if err != nil {
		return err
	}

	notionClient, err := notion.NewClient(notionConfig)
	if err != nil {
		return fmt.Errorf("failed to create Notion client: %w", err)
	}

	// Set up signal handling for graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up instrumentation
	instrConfig := instrumentation.ConfigFromEnv()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil && transport != "stdio" {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// Create server context
	serverContext, err := server.NewServerContext(shutdownCtx, notionClient)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}

	healthChecker := server.NewHealthChecker(serverContext)

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			HealthChecker:           healthChecker,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("notiondo", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// Register all tools and resources
	if err := registerAll(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting notiondo MCP server with %s transport on %s...\n", transport, httpAddr)
		return runStreamableHTTPServer(mcpSrv, healthChecker, httpAddr, shutdownCtx)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(mcpSrv *mcpserver.MCPServer, healthChecker *server.HealthChecker, httpAddr string, shutdownCtx context.Context) error {
	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(httpAddr); err != nil {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-shutdownCtx.Done():
		healthChecker.SetReady(false)
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}

// registerAll registers all MCP tools and resources
func registerAll(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := notion_tools.RegisterNotionTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register Notion tools: %w", err)
	}
	if err := resources.RegisterDatabaseResources(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register database resources: %w", err)
	}
	return nil
}
