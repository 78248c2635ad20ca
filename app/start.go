package app

import (
	"github.com/spf13/cobra"

	"github.com/finansync/finansync-api/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the FinanSync API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			d, err := daemon.New(cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
