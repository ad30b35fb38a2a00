package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/logging"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
	"github.com/openclaw/openclaw-migrate/internal/workspace"
)

func newDiscoverCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DiscoverUse,
		Short: messages.DiscoverShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Setup(root.verbosity)
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sys := sysexec.RealSystem{}
			scanner := discover.NewScanner(sys, cfg, logging.Component(log, "discover"))

			homes, err := discover.EnumerateHomes(sys)
			if err != nil {
				return err
			}
			candidates := scanner.Scan(homes)
			if len(candidates) == 0 {
				_, _ = fmt.Fprintln(out, messages.DiscoverNoneFound)
				return &SilentExitError{Code: 1}
			}

			for i, c := range candidates {
				name := c.Username
				if i == 0 {
					name = color.GreenString(name)
				}
				_, _ = fmt.Fprintf(out, messages.DiscoverCandidateFmt, name, c.Score, c.HomePath)
				for _, e := range c.Evidence {
					_, _ = fmt.Fprintf(out, messages.DiscoverEvidenceFmt, e)
				}
			}
			if len(discover.Ties(candidates)) > 1 {
				_, _ = fmt.Fprintf(out, "%s", color.YellowString(messages.DiscoverTiedNote))
			}

			best := candidates[0]
			record := discover.BuildRecord(sys, best.Username, best.HomePath, scanner.Aliases())
			printRecord(out, &record)
			ws := workspace.Resolve(sys, &record, workspace.OptionsFromScanner(scanner))
			if ws.Path != "" {
				_, _ = fmt.Fprintf(out, messages.DiscoverWorkspaceFmt, layout.ContractTilde(ws.Path, best.HomePath), ws.Source)
			}
			for _, conflict := range ws.Conflicts {
				_, _ = fmt.Fprintf(out, messages.DiscoverConflictFmt, color.YellowString(conflict))
			}
			return nil
		},
	}
}

func printRecord(out io.Writer, record *discover.Record) {
	if record.ConfigDir == "" {
		_, _ = fmt.Fprintf(out, messages.DiscoverConfigMissingFmt, record.Home)
		return
	}
	_, _ = fmt.Fprintf(out, messages.DiscoverConfigDirFmt, record.ConfigDir)
}
