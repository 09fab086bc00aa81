package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Rorical/ezframe/internal/app"
	"github.com/Rorical/ezframe/internal/config"
	"github.com/Rorical/ezframe/internal/logging"
	"github.com/Rorical/ezframe/internal/storage"
)

var (
	configPath string
	logLevel   string
	ephemeral  bool
)

var rootCmd = &cobra.Command{
	Use:           "ezframe",
	Short:         "Decode hex frames in the terminal",
	Long:          `ezframe decodes hex frames with an external decode command and shows the shared result in a terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Log to a file so log lines do not corrupt the screen
		logger, closer, err := logging.InitFile(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closer.Close()

		rt, err := app.NewRuntime(cfg, logger)
		if err != nil {
			return err
		}
		application := app.NewApplication(rt)
		defer func() {
			if err := application.Stop(); err != nil {
				logger.Error().Err(err).Msg("shutdown failed")
			}
		}()

		if err := application.Start(); err != nil {
			return fmt.Errorf("application error: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $EZFRAME_HOME/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep preferences in memory only")

	rootCmd.AddCommand(decodeCmd, batchCmd, prefsCmd, configCmd)
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if ephemeral {
		cfg.Storage.Driver = storage.DriverMemory
	}
	return cfg, nil
}

// newCLIRuntime builds a runtime that logs to stderr, for the one-shot
// subcommands.
func newCLIRuntime() (*app.Runtime, zerolog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.Init(cfg.Log, os.Stderr)
	rt, err := app.NewRuntime(cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return rt, logger, nil
}
