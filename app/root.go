// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/db"
	"github.com/finansync/finansync-api/internal/logger"
)

const (
	// EnvConfigPath overrides the --config flag.
	EnvConfigPath = "FINANSYNC_CONFIG_PATH"

	configKey = "config"
)

var rootCmd = &cobra.Command{
	Use:   "finansync",
	Short: "FinanSync is the API server of the FinanSync personal finance app",
	Long: `FinanSync is the API server of the FinanSync personal finance app.
It authenticates users with bearer tokens and serves their profile,
settings, accounts and transactions.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(configKey, "./etc/", "directory holding main.toml")

	if err := viper.BindPFlag(configKey, rootCmd.PersistentFlags().Lookup(configKey)); err != nil {
		panic(err)
	}

	if err := viper.BindEnv(configKey, EnvConfigPath); err != nil {
		panic(err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(viper.GetString(configKey))
	if err != nil {
		return nil, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// openDB connects to and migrates the configured database.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Open(&cfg.DB)
	if err != nil {
		return nil, err
	}

	return conn, db.Migrate(conn)
}
