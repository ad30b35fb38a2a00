package main

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	verbosity  int
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", messages.FlagVerbose)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, messages.FlagConfig)

	cmd.AddCommand(newDiscoverCmd(opts))
	cmd.AddCommand(newPreflightCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}
