package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/openclaw/openclaw-migrate/internal/accounts"
	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/logging"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/pipeline"
	"github.com/openclaw/openclaw-migrate/internal/preflight"
	"github.com/openclaw/openclaw-migrate/internal/prompt"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
	"github.com/openclaw/openclaw-migrate/internal/workspace"
)

// migrateOptions are the per-run knobs of the migrate subcommand.
type migrateOptions struct {
	dryRun  bool
	yes     bool
	force   bool
	oldUser string
	newUser string

	renameUser           bool
	migrateLegacyDirs    bool
	standardizeWorkspace bool
	createSymlinks       bool
}

// newPrompterFunc is a seam so command tests can inject a scripted prompter.
var newPrompterFunc = func() prompt.Prompter { return prompt.NewHuhPrompter() }

func newMigrateCmd(root *rootOptions) *cobra.Command {
	opts := &migrateOptions{}
	cmd := &cobra.Command{
		Use:   messages.MigrateUse,
		Short: messages.MigrateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate(cmd.OutOrStdout(), root, opts)
			if errors.Is(err, prompt.ErrAborted) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.MigrateAborted)
				return nil
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, messages.FlagDryRun)
	flags.BoolVarP(&opts.yes, "yes", "y", false, messages.FlagYes)
	flags.BoolVar(&opts.force, "force", false, messages.FlagForce)
	flags.StringVar(&opts.oldUser, "old-user", "", messages.FlagOldUser)
	flags.StringVar(&opts.newUser, "new-user", "", messages.FlagNewUser)
	flags.BoolVar(&opts.renameUser, "rename-user", true, messages.FlagRenameUser)
	flags.BoolVar(&opts.migrateLegacyDirs, "migrate-legacy-dirs", true, messages.FlagMigrateLegacyDirs)
	flags.BoolVar(&opts.standardizeWorkspace, "standardize-workspace", true, messages.FlagStandardizeWorkspace)
	flags.BoolVar(&opts.createSymlinks, "create-symlinks", true, messages.FlagCreateSymlinks)
	return cmd
}

func runMigrate(out io.Writer, root *rootOptions, opts *migrateOptions) error {
	log := logging.Setup(root.verbosity)
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return err
	}
	sys := sysexec.RealSystem{}
	scanner := discover.NewScanner(sys, cfg, logging.Component(log, "discover"))
	prompter := newPrompterFunc()
	if opts.yes {
		prompter = prompt.AssumeDefaults{}
	}

	username, home, err := selectAccount(opts, scanner, sys, prompter)
	if err != nil {
		return err
	}
	record := discover.BuildRecord(sys, username, home, scanner.Aliases())
	ws := workspace.Resolve(sys, &record, workspace.OptionsFromScanner(scanner))
	for _, conflict := range ws.Conflicts {
		_, _ = fmt.Fprintf(out, messages.MigrateNoteFmt, conflict)
	}

	if err := runPreflight(out, opts, scanner, sys, username, home, prompter); err != nil {
		return err
	}

	plan, err := buildPlan(opts, username, prompter)
	if err != nil {
		return err
	}

	if !opts.yes {
		proceed := false
		title := fmt.Sprintf(messages.PromptProceedTitleFmt, username)
		if err := prompter.Confirm(title, &proceed); err != nil {
			return err
		}
		if !proceed {
			return prompt.ErrAborted
		}
	}

	if plan.DryRun {
		_, _ = fmt.Fprintf(out, "%s", messages.MigrateDryRunBanner)
	}
	exec := sysexec.New(sys, sysexec.Options{
		DryRun: plan.DryRun,
		Out:    out,
		Logger: logging.Component(log, "exec"),
	})
	ctx, err := pipeline.NewContext(plan, &record, ws, cfg, exec, logging.Component(log, "pipeline"))
	if err != nil {
		return err
	}
	summary, runErr := pipeline.Run(ctx)
	printSummary(out, summary)
	if runErr != nil {
		return runErr
	}
	if len(summary.Incomplete) > 0 {
		_, _ = fmt.Fprintln(out, messages.MigrateRerunHint)
		return &SilentExitError{Code: 1}
	}
	if summary.DryRun {
		_, _ = fmt.Fprintln(out, messages.MigrateDoneDryRun)
	} else {
		_, _ = fmt.Fprintln(out, messages.MigrateDoneApply)
	}
	return nil
}

// selectAccount resolves the account to migrate. Ties between top-scoring
// candidates are put to the operator; --yes takes the deterministic first.
func selectAccount(opts *migrateOptions, scanner *discover.Scanner, sys sysexec.System, prompter prompt.Prompter) (string, string, error) {
	if opts.oldUser != "" {
		home, err := accounts.HomeOf(opts.oldUser)
		if err != nil {
			// A completed rename leaves the old login unresolvable while the
			// target exists. Re-runs keep the same flag set, so continue
			// against the new login; the remaining stages are idempotent.
			if opts.newUser != "" && accounts.Exists(opts.newUser) {
				if newHome, herr := accounts.HomeOf(opts.newUser); herr == nil {
					return opts.newUser, newHome, nil
				}
			}
			return "", "", err
		}
		return opts.oldUser, home, nil
	}
	homes, err := discover.EnumerateHomes(sys)
	if err != nil {
		return "", "", err
	}
	candidates := scanner.Scan(homes)
	if len(candidates) == 0 {
		return "", "", fmt.Errorf(messages.DiscoverNoneFound)
	}
	ties := discover.Ties(candidates)
	if len(ties) > 1 {
		options := make([]string, len(ties))
		byName := make(map[string]discover.Candidate, len(ties))
		for i, c := range ties {
			options[i] = c.Username
			byName[c.Username] = c
		}
		choice := options[0]
		if err := prompter.Select(messages.PromptCandidateTitle, options, &choice); err != nil {
			return "", "", err
		}
		picked := byName[choice]
		return picked.Username, picked.HomePath, nil
	}
	best := candidates[0]
	return best.Username, best.HomePath, nil
}

// runPreflight validates the migration and decides whether to continue:
// blocking findings stop the run unless forced, warnings ask the operator.
func runPreflight(out io.Writer, opts *migrateOptions, scanner *discover.Scanner, sys sysexec.System, username string, home string, prompter prompt.Prompter) error {
	report := preflight.NewValidator(sys, unitNames(scanner)).Validate(username, home)
	for _, result := range report.Results {
		printResult(out, result)
	}
	if !report.Passed() && !opts.force {
		return fmt.Errorf(messages.PreflightBlocked)
	}
	if len(report.Warnings()) > 0 && !opts.yes {
		proceed := false
		if err := prompter.Confirm(messages.PromptContinueWarnedTitle, &proceed); err != nil {
			return err
		}
		if !proceed {
			return prompt.ErrAborted
		}
	}
	return nil
}

// buildPlan assembles and validates the pipeline plan. When a rename is
// wanted but no target login was given, the canonical name is suggested.
func buildPlan(opts *migrateOptions, username string, prompter prompt.Prompter) (*pipeline.Plan, error) {
	plan := &pipeline.Plan{
		OldUser:              username,
		NewUser:              opts.newUser,
		RenameUser:           opts.renameUser,
		StandardizeWorkspace: opts.standardizeWorkspace,
		MigrateLegacyDirs:    opts.migrateLegacyDirs,
		CreateSymlinks:       opts.createSymlinks,
		DryRun:               opts.dryRun,
		Force:                opts.force,
	}
	if plan.RenameUser && plan.NewUser == username {
		// The account already carries the requested login, typically because
		// an earlier run performed the rename. Nothing left to rename.
		plan.RenameUser = false
		plan.NewUser = ""
	}
	if plan.RenameUser && plan.NewUser == "" {
		suggestion := layout.CanonicalName
		if suggestion == username {
			plan.RenameUser = false
		} else if opts.yes {
			plan.NewUser = suggestion
		} else {
			if err := prompter.Input(messages.PromptNewUserTitle, &suggestion); err != nil {
				return nil, err
			}
			plan.NewUser = suggestion
			if plan.NewUser == username {
				plan.RenameUser = false
				plan.NewUser = ""
			}
		}
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func printSummary(out io.Writer, summary *pipeline.Summary) {
	if summary == nil {
		return
	}
	_, _ = fmt.Fprintf(out, messages.MigrateSummaryFmt, summary.RunID, len(summary.Completed), len(summary.Incomplete))
	for _, note := range summary.Notes {
		_, _ = fmt.Fprintf(out, messages.MigrateNoteFmt, note)
	}
	for _, failure := range summary.Incomplete {
		_, _ = fmt.Fprintf(out, messages.MigrateIncompleteFmt, failure.Name, failure.Err)
	}
}
