package cli

import (
	"fmt"

	"github.com/badgerworks/honeybadger/internal/config"
	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFile    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "honeybadger-server",
	Short: "Honey Badger - gift + challenge delivery platform server",
	Long: `Honey Badger is a gift delivery platform where recipients unlock
gifts by completing challenges.

Run 'honeybadger-server serve' to start the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// Override with CLI flags if provided
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}

		logConfig := logger.Config{
			Level:    logger.ParseLevel(cfg.LogLevel),
			FilePath: cfg.LogFile,
			MaxSize:  10 * 1024 * 1024,
			Console:  cfg.LogConsole,
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(cleanupSessionsCmd)
	rootCmd.AddCommand(deactivateUserCmd)
}
