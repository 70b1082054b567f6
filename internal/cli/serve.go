package cli

import (
	"fmt"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume tailoring and analysis",
	Long: `Start an HTTP server that provides REST API endpoints for resume tailoring.

Available endpoints:
- POST /tailor: Tailor a profile for a job posting
- POST /parse: Parse a plain-text resume into structured data
- POST /analyze: Analyze a job posting for keywords and requirements
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server
- Use --cert-file and --key-file for TLS certificates`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	// Hot-reload prompt override files while serving
	if watcher := startPromptWatcher(cfg, logger); watcher != nil {
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.LogError(err, "Failed to stop prompt watcher")
			}
		}()
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}

// startPromptWatcher watches configured prompt override files and reloads
// them on change. Returns nil when no prompt files are configured.
func startPromptWatcher(cfg *config.Config, logger *errors.Logger) *config.PromptWatcher {
	files := cfg.PromptFiles()
	if len(files) == 0 {
		return nil
	}

	watcher, err := config.NewPromptWatcher(files, 500*time.Millisecond, func() {
		if err := cfg.ReloadPromptFiles(); err != nil {
			logger.LogError(err, "Failed to reload prompt files")
			return
		}
		logger.Info("Prompt files reloaded", "files", len(files))
	})
	if err != nil {
		logger.LogError(err, "Failed to create prompt watcher")
		return nil
	}

	if err := watcher.Start(); err != nil {
		logger.LogError(err, "Failed to start prompt watcher")
		return nil
	}

	logger.Info("Watching prompt files for changes", "files", files)
	return watcher
}
