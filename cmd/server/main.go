package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"workforce-planner/backend/internal/api"
	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/internal/config"
	"workforce-planner/backend/internal/logging"
	"workforce-planner/backend/internal/mcp"
	"workforce-planner/backend/internal/repository"
	"workforce-planner/backend/internal/services"
	"workforce-planner/backend/internal/tls"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:   "workforce-planner",
		Short: "Workforce impact simulation service",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")

	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}
	logger.Info("Configuration loaded", "config_file", viper.ConfigFileUsed())

	logger.Info("Starting Workforce Planner Service")

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("Failed to load task catalog", "error", err)
		return err
	}

	// Plan store: Postgres when configured, in-memory otherwise.
	var store repository.PlanStore
	if cfg.DB.Host != "" {
		dbPool, err := initDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return err
		}
		defer dbPool.Close()

		pgStore := repository.NewPostgresPlanStore(dbPool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to ensure schema", "error", err)
			return err
		}
		store = pgStore
		logger.Info("Database connected", "host", cfg.DB.Host, "name", cfg.DB.Name)
	} else {
		store = repository.NewMemoryPlanStore()
		logger.Warn("No database configured, plans are kept in memory only")
	}

	planner := services.NewPlannerService(rosterSource(cfg, logger), store, cat, logger)

	logger.Info("Service layer initialized")

	// Create Echo server
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("workforce-planner"))

	e.GET("/health", api.HandleHealth)

	// Mount REST API handlers under /api/v1 to match the OpenAPI spec
	apiGroup := e.Group("/api/v1")
	api.RegisterHandlers(apiGroup, api.NewServer(planner))

	logger.Info("REST API handlers mounted")

	// Mount MCP protocol handlers
	mcpServer := mcp.NewServer(planner)
	mcpHandlers := http.NewServeMux()
	mcp.MountHTTPHandlers(mcpHandlers, mcpServer.GetMCPServer())
	e.Any("/mcp/*", echo.WrapHandler(mcpHandlers))

	logger.Info("MCP protocol handlers mounted")

	// expose OpenAPI spec and Swagger UI
	e.GET("/openapi.yaml", echo.WrapHandler(api.SpecHandler()))
	e.GET("/docs", echo.WrapHandler(api.SwaggerHandler()))

	addr := cfg.Server.Addr
	if cfg.TLS.Enable {
		// use TLS port 8443
		addr = ":8443"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", addr, "tls", cfg.TLS.Enable)
		if cfg.TLS.Enable {
			if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
				logger.Error("TLS enabled but cert/key file not provided")
				serverErrors <- server.ListenAndServe()
				return
			}
			// generate if missing and hostnames provided
			if _, err := os.Stat(cfg.TLS.CertFile); os.IsNotExist(err) {
				if len(cfg.TLS.Hostnames) > 0 {
					if err := tls.GenerateSelfSignedCert(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.Hostnames); err != nil {
						logger.Error("failed to generate self-signed cert", "error", err)
					}
				}
			}
			serverErrors <- server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			return err
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error", "error", err)
			}
		}

		logger.Info("Server stopped gracefully")
	}
	return nil
}

func seedCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo roster and prepare the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "roster.json", "Roster output file")
	return cmd
}

func runSeed(ctx context.Context, out string) error {
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}

	roster := services.SeedRoster()
	data, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roster file: %w", err)
	}
	logger.Info("Demo roster written", "file", out, "employees", len(roster))

	if cfg.DB.Host != "" {
		dbPool, err := initDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return err
		}
		defer dbPool.Close()

		if err := repository.NewPostgresPlanStore(dbPool).EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		logger.Info("Database schema ensured", "host", cfg.DB.Host, "name", cfg.DB.Name)
	}
	return nil
}

// rosterSource picks the roster backend: an external service when a URL is
// configured, a local file when it exists, the built-in demo roster otherwise.
func rosterSource(cfg *config.Config, logger *logging.Logger) services.RosterSource {
	if cfg.Roster.URL != "" {
		logger.Info("Using roster service", "url", cfg.Roster.URL)
		return services.NewHTTPRosterClient(cfg.Roster.URL)
	}
	if cfg.Roster.File != "" {
		if _, err := os.Stat(cfg.Roster.File); err == nil {
			logger.Info("Using roster file", "file", cfg.Roster.File)
			return services.NewFileRosterSource(cfg.Roster.File)
		}
	}
	logger.Info("Using built-in demo roster")
	return services.NewStaticRosterSource(services.SeedRoster())
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File != "" {
		return catalog.LoadFile(cfg.Catalog.File)
	}
	return catalog.Load()
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	logger.Debug("Initializing database connection")

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
