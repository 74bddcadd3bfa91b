package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/muninn-cache/muninn/pkg/api"
	"github.com/muninn-cache/muninn/pkg/config"
	"github.com/muninn-cache/muninn/pkg/disk"
	"github.com/muninn-cache/muninn/pkg/shape"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST inspection API over the cache",
	Long: `Start the HTTP server exposing key listing, record inspection,
eviction, statistics, and Prometheus metrics.

Example:
  muninn serve --config ./muninn.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// The config's cache dir wins over the --cache-dir flag here
		store, err := disk.New(cfg.CacheDir, shape.NewResolver(shape.NewRegistry()))
		if err != nil {
			return fmt.Errorf("failed to open cache dir: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.Logging.Level),
		}))

		return api.StartServer(store, api.ServerConfig{
			Port:          cfg.Port,
			APIKey:        cfg.Security.APIKey,
			EncryptionKey: cfg.Security.EncryptionKey,
		}, logger)
	},
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	serveCmd.Flags().String("config", "", "Path of the config file to load")
	rootCmd.AddCommand(serveCmd)
}
