package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	intconfig "greenjourney/internal/config"
	intdb "greenjourney/internal/db"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users, journeys and bookings tables if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := rootOpts.loadEnv()
			db, err := intconfig.ConnectDB(env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			if err := intdb.EnsureSchema(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in journey catalogue into an empty journeys table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := rootOpts.loadEnv()
			db, err := intconfig.ConnectDB(env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			if err := intdb.EnsureSchema(db); err != nil {
				return err
			}
			n, err := intdb.SeedJourneys(db)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "journeys already present, nothing to seed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d journeys\n", n)
			return nil
		},
	}
}
