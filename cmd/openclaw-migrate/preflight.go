package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openclaw/openclaw-migrate/internal/accounts"
	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/logging"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/preflight"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

func newPreflightCmd(root *rootOptions) *cobra.Command {
	var oldUser string
	cmd := &cobra.Command{
		Use:   messages.PreflightUse,
		Short: messages.PreflightShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Setup(root.verbosity)
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sys := sysexec.RealSystem{}
			scanner := discover.NewScanner(sys, cfg, logging.Component(log, "discover"))

			username, home, err := pickAccount(oldUser, scanner, sys)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.PreflightHeaderFmt, username, home)

			report := preflight.NewValidator(sys, unitNames(scanner)).Validate(username, home)
			for _, result := range report.Results {
				printResult(out, result)
			}
			if !report.Passed() {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&oldUser, "old-user", "", messages.FlagOldUser)
	return cmd
}

// pickAccount resolves the account to operate on: the explicit flag when
// given, otherwise the best discovery candidate.
func pickAccount(oldUser string, scanner *discover.Scanner, sys sysexec.System) (string, string, error) {
	if oldUser != "" {
		home, err := accounts.HomeOf(oldUser)
		if err != nil {
			return "", "", err
		}
		return oldUser, home, nil
	}
	homes, err := discover.EnumerateHomes(sys)
	if err != nil {
		return "", "", err
	}
	best := scanner.PickBest(homes)
	if best == nil {
		return "", "", fmt.Errorf(messages.DiscoverNoneFound)
	}
	return best.Username, best.HomePath, nil
}

// unitNames returns the canonical unit plus one per effective legacy alias.
func unitNames(scanner *discover.Scanner) []string {
	units := []string{layout.CanonicalUnit}
	for _, alias := range scanner.Aliases() {
		units = append(units, alias+".service")
	}
	return units
}

func printResult(out io.Writer, r preflight.Result) {
	var status string
	switch r.Status {
	case preflight.StatusOK:
		status = color.GreenString(messages.StatusOKLabel)
	case preflight.StatusInfo:
		status = color.CyanString(messages.StatusInfoLabel)
	case preflight.StatusWarn:
		status = color.YellowString(messages.StatusWarnLabel)
	case preflight.StatusError:
		status = color.RedString(messages.StatusErrorLabel)
	}
	_, _ = fmt.Fprintf(out, messages.PreflightResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, messages.PreflightRecommendFmt, r.Recommendation)
	}
}
