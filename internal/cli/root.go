package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/config"
	"github.com/laundrydesk/laundrydesk/internal/factory"
	redisstorage "github.com/laundrydesk/laundrydesk/internal/storage/redis"
)

var (
	cfg    *config.Config
	app    *factory.App
	output string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = config.Load()

	rootCmd := &cobra.Command{
		Use:   "laundrydesk",
		Short: "Back-office CLI for a laundry shop",
		Long: `laundrydesk manages the back office of a laundry business: staff
accounts and sign-in, order intake and workflow, pickup/delivery dispatch,
and the processing queue.

State is kept in local JSON files by default, so the signed-in session and
all records survive between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = factory.New(cmd.Context(), factory.Config{
				Logger:      newLogger(cfg),
				StorageType: cfg.StorageType,
				DataDir:     cfg.DataDir,
				RedisConfig: redisConfig(cfg),
			})
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, file, redis (env: LAUNDRYDESK_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory for file storage (env: LAUNDRYDESK_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: LAUNDRYDESK_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newOverviewCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newQueueCmd())
	rootCmd.AddCommand(newDispatchCmd())
	rootCmd.AddCommand(newStaffCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func redisConfig(cfg *config.Config) *redisstorage.Config {
	if cfg.StorageType != factory.StorageTypeRedis {
		return nil
	}
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = cfg.RedisURL
	return &redisCfg
}
