package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/server"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

var (
	serveHost   string
	servePort   string
	swaggerSpec string
	watchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sommelier server",
	Long: `Start the Sommelier HTTP server.

The chat backend is chosen once at startup from the config. Bottle lookup
settings are reloaded when the config file changes. Idle sessions are
dropped after server.session_timeout_minutes.

The server provides:
  - /health          - Basic server health check
  - /ready           - Readiness check (probes the chat backend)
  - /api/recommend   - Single recommendation
  - /api/compare     - Every persona for one dish
  - /api/ws          - Session socket
  - /swagger         - API browser

Examples:
  sommelier serve                    # Start on default port 8080
  sommelier serve --port 3000        # Start on custom port
  sommelier serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger()
		if err != nil {
			return err
		}

		h, cm, err := loadConfig(logger)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		services, err := svcctx.Build(ctx, cm.Get(), svcctx.BuildOptions{
			Home:          h,
			ConfigManager: cm,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Host:            serveHost,
			Port:            servePort,
			Services:        services,
			ConfigManager:   cm,
			SwaggerSpecPath: swaggerSpec,
			Logger:          logger,
		})
		if err != nil {
			_ = services.Close()
			return err
		}

		if watchConfig && cm.ConfigFileUsed() != "" {
			cm.WatchConfig()
			logger.Info("watching config file", "file", cm.ConfigFileUsed())
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&swaggerSpec, "swagger-spec", "", "Serve this swagger.json instead of the compiled-in document")
	serveCmd.Flags().BoolVar(&watchConfig, "watch", true, "Reload bottle settings when the config file changes")

	rootCmd.AddCommand(serveCmd)
}
