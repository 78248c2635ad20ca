package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finansync/finansync-api/internal/auth"
)

func init() { //nolint: gochecknoinits
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user name the token is issued for")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(tokenCmd)
}

var (
	tokenUser string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := openDB(cfg)
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Authentication.Bearer)
			if err != nil {
				return err
			}

			user, err := auth.NewLocalProvider(conn).GetUserByUserName(cmd.Context(), tokenUser)
			if err != nil {
				return err
			}

			token, err := tokens.Issue(user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, token.Value)

			if token.ExpirationDate != nil {
				_, _ = fmt.Fprintf(out, "expires %s\n", token.ExpirationDate.Format(time.RFC3339))
			}

			return nil
		},
	}
)
