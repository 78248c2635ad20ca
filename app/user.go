package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finansync/finansync-api/internal/auth"
)

func init() { //nolint: gochecknoinits
	userAddCmd.Flags().StringVar(&newUser.UserName, "name", "", "user name")
	userAddCmd.Flags().StringVar(&newUser.Email, "email", "", "email address")
	userAddCmd.Flags().StringVar(&newUser.Password, "password", "", "password")
	userAddCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	userAddCmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	for _, name := range []string{"name", "email", "password"} {
		_ = userAddCmd.MarkFlagRequired(name)
	}

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	newUser             auth.NewUser
	firstName, lastName string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create an active local user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			if firstName != "" {
				newUser.FirstName = &firstName
			}

			if lastName != "" {
				newUser.LastName = &lastName
			}

			user, err := auth.NewLocalProvider(conn).CreateUser(cmd.Context(), newUser)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.UserName, user.ID)

			return nil
		},
	}
)
