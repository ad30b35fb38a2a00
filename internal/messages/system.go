package messages

// System messages for the execution shim and host collaborators.
const (
	// ActionLineFmt formats one applied mutation line.
	ActionLineFmt = "  %s\n"
	// ActionDryRunLineFmt formats one described mutation line in dry-run mode.
	ActionDryRunLineFmt = "  [dry-run] %s\n"

	ActionMkdirFmt        = "create directory %s"
	ActionWriteFmt        = "write %s (%d bytes)"
	ActionMoveFmt         = "move %s -> %s"
	ActionRemoveFmt       = "remove %s"
	ActionRemoveTreeFmt   = "remove tree %s"
	ActionSymlinkFmt      = "create symlink %s -> %s"
	ActionChownFmt        = "chown %s to %d:%d"
	ActionChownTreeFmt    = "chown -R %s to %d:%d"
	ActionChmodFmt        = "chmod %s to %v"
	ActionCommandFmt      = "run %s"
	ActionCommandInputFmt = "run %s (%d bytes on stdin)"

	DiffLineFmt      = "    | %s\n"
	DiffTruncatedFmt = "    | ... diff truncated at %d lines\n"

	SysCommandFailedFmt = "%s: %w: %s"

	SysWriteTempCreateFmt = "create temp file for %s: %w"
	SysWriteTempChmodFmt  = "set permissions for %s: %w"
	SysWriteTempWriteFmt  = "write temp file for %s: %w"
	SysWriteTempSyncFmt   = "sync temp file for %s: %w"
	SysWriteTempCloseFmt  = "close temp file for %s: %w"
	SysWriteTempRenameFmt = "rename temp file for %s: %w"

	// AccountsLookupFailedFmt formats user database lookup failures.
	AccountsLookupFailedFmt = "look up user %s: %w"
	AccountsUIDParseFmt     = "parse uid for %s: %w"
	AccountsGIDParseFmt     = "parse gid for %s: %w"

	// CronReadFailedFmt formats crontab read failures.
	CronReadFailedFmt = "read crontab for %s: %w"

	// SudoersValidateFailedFmt formats visudo validation failures.
	SudoersValidateFailedFmt = "validate %s: %w"
)
