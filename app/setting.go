package app

import (
	"fmt"

	"github.com/spf13/cobra"

	settingctl "github.com/finansync/finansync-api/internal/db/controller/setting"
	"github.com/finansync/finansync-api/internal/db/models"
)

func init() { //nolint: gochecknoinits
	settingAddCmd.Flags().StringVar(&settingType, "type", string(models.TypeString), "value type of the setting")
	settingAddCmd.Flags().StringVar(&settingDefault, "default", "", "default value")

	settingCmd.AddCommand(settingListCmd, settingAddCmd, settingDeleteCmd)
	rootCmd.AddCommand(settingCmd)
}

var (
	settingType    string
	settingDefault string

	settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Manage the settings catalog",
	}

	settingListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the catalog settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			settings, err := settingctl.GetAll(conn)
			if err != nil {
				return err
			}

			for _, s := range settings {
				def := "-"
				if s.DefaultValue != nil {
					def = *s.DefaultValue
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-32s %-8s %s\n", s.Name, s.TypeCode, def)
			}

			return nil
		},
	}

	settingAddCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Add a catalog setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeCode, ok := models.ParseTypeCode(settingType)
			if !ok {
				return fmt.Errorf("%w: %s", settingctl.ErrUnknownTypeCode, settingType)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			var def *string
			if cmd.Flags().Changed("default") {
				def = &settingDefault
			}

			s, err := settingctl.Create(conn, args[0], typeCode, def)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created setting %s (%s)\n", s.Name, s.TypeCode)

			return nil
		},
	}

	settingDeleteCmd = &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a catalog setting and every user value of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			if err = settingctl.Delete(conn, args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted setting %s\n", args[0])

			return nil
		},
	}
)
