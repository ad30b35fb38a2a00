package messages

// Root command.
const (
	RootUse   = "openclaw-migrate"
	RootShort = "Discover and migrate an OpenClaw agent installation to the canonical layout"

	FlagVerbose = "increase log verbosity (repeatable)"
	FlagConfig  = "path to the migrator configuration file"

	VersionFullFmt  = "%s (commit %s, built %s)"
	VersionTemplate = "{{.Version}}\n"
)

// discover subcommand.
const (
	DiscoverUse   = "discover"
	DiscoverShort = "Locate agent installations and report the best candidate"

	DiscoverNoneFound        = "no agent installation found on this system"
	DiscoverCandidateFmt     = "%s  score %d  home %s\n"
	DiscoverEvidenceFmt      = "    %s\n"
	DiscoverTiedNote         = "note: top candidates are tied; pass --old-user to choose\n"
	DiscoverWorkspaceFmt     = "workspace: %s (%s)\n"
	DiscoverConflictFmt      = "conflict: %s\n"
	DiscoverConfigDirFmt     = "config dir: %s\n"
	DiscoverConfigMissingFmt = "config dir: none under %s\n"
)

// preflight subcommand.
const (
	PreflightUse   = "preflight"
	PreflightShort = "Validate that a migration can proceed without running it"

	PreflightHeaderFmt     = "Preflight for account %q (%s)\n"
	PreflightResultLineFmt = "[%s] %s: %s\n"
	PreflightRecommendFmt  = "       ↳ %s\n"
	PreflightBlocked       = "preflight found blocking problems; fix them or re-run with --force"

	StatusOKLabel    = "ok"
	StatusInfoLabel  = "info"
	StatusWarnLabel  = "warn"
	StatusErrorLabel = "fail"
)

// migrate subcommand.
const (
	MigrateUse   = "migrate"
	MigrateShort = "Run the migration pipeline against the discovered installation"

	FlagDryRun               = "describe every action without applying any"
	FlagYes                  = "answer yes to every confirmation"
	FlagOldUser              = "account owning the installation (skips discovery)"
	FlagNewUser              = "login the account is renamed to"
	FlagForce                = "proceed despite blocking preflight findings"
	FlagRenameUser           = "rename the owning account"
	FlagMigrateLegacyDirs    = "fold legacy config directories into the canonical one"
	FlagStandardizeWorkspace = "move the workspace to the canonical location"
	FlagCreateSymlinks       = "leave compatibility symlinks at legacy paths"

	MigrateAborted       = "migration aborted; nothing was changed"
	MigrateDryRunBanner  = "dry run: describing actions, applying nothing\n"
	MigrateSummaryFmt    = "\nrun %s: %d stage(s) completed, %d incomplete\n"
	MigrateNoteFmt       = "note: %s\n"
	MigrateIncompleteFmt = "incomplete: %s: %v\n"
	MigrateRerunHint     = "fix the reported problems and re-run; completed stages are skipped automatically"
	MigrateDoneApply     = "migration complete"
	MigrateDoneDryRun    = "dry run complete; re-run without --dry-run to apply"
)
