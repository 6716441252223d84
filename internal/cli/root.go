package cli

import (
	"github.com/spf13/cobra"

	intconfig "greenjourney/internal/config"
	"greenjourney/internal/utils"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

func (o *RootOptions) loadEnv() intconfig.Env {
	env := intconfig.LoadEnv(o.EnvFile)
	utils.InitLoggers(env.LogFile, env.LogLevel)
	return env
}

// NewRootCommand creates the greenjourney command. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "greenjourney",
		Short:         "Green Journey - low-carbon travel search and booking",
		Long:          "Search journeys by price, time or CO2, book them and track the emissions you saved.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
