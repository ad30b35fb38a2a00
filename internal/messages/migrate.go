package messages

// Plan validation errors.
const (
	PlanOldUserRequired         = "no account to migrate: pass --old-user or run discovery first"
	PlanNewUserRequired         = "account rename requested but no --new-user given"
	PlanNewUserWithoutRenameFmt = "--new-user %q given but account rename is disabled"
	PlanSameUserFmt             = "--new-user %q is the same as the current login"
	PlanInvalidUsernameFmt      = "%q is not a valid login name"
	PlanTargetExistsFmt         = "target account %q already exists; merging into an existing account is not supported"
)

// Pipeline stage names, in execution order.
const (
	StepStopServices         = "stop services"
	StepRenameAccount        = "rename account"
	StepCleanupUnits         = "clean up legacy units"
	StepUpdateConfigs        = "update configuration files"
	StepUpdateUserServices   = "update user services"
	StepUpdateShellConfigs   = "update shell configuration"
	StepMigrateWorkspace     = "migrate workspace"
	StepUpdateScheduledTasks = "update scheduled tasks"
	StepFixOwnership         = "fix ownership and permissions"
	StepCreateSymlinks       = "create compatibility symlinks"
)

// Pipeline progress and failure reporting.
const (
	StepHeaderFmt            = "\n==> %s: %s\n"
	FatalStepFmt             = "stage %q failed: %v"
	RenameBothExistFmt       = "both %q and %q exist; refusing to guess which account to keep"
	ConfigsLegacyDirKeptFmt  = "legacy config dir %s kept: %s already has content"
	ConfigsEnvInvalidFmt     = "rewritten %s no longer parses as dotenv: %v"
	WorkspaceMergeSkippedFmt = "workspace merge kept existing %s; source copy not applied"
)
