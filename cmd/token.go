package cmd

import (
	"fmt"
	"time"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		subject int64
		role    string
		name    string
		email   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			parsed, err := kernel.ParseRole(role)
			if err != nil {
				return err
			}
			if _, err = kernel.NewActor(kernel.ID(subject), parsed, name, email); err != nil {
				return err
			}

			raw, err := httpin.SignToken([]byte(cfg.JWTSecret), subject, parsed.String(), name, email, time.Now(), ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
	cmd.Flags().Int64Var(&subject, "sub", 0, "user id the token is issued for")
	cmd.Flags().StringVar(&role, "role", "customer", "customer, staff or admin")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email, recorded in audit stamps")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
