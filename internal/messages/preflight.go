package messages

// Preflight messages for the readiness validator.
const (
	PreflightCheckDiskSpace = "DiskSpace"
	PreflightCheckSSH       = "SSHKeys"
	PreflightCheckSymlinks  = "Symlinks"
	PreflightCheckService   = "Service"
	PreflightCheckSessions  = "Sessions"
	PreflightCheckHandles   = "OpenFiles"
	PreflightCheckCrontab   = "Crontab"

	PreflightHomeSizeUnknownFmt = "could not size home %s: %v"
	PreflightStatfsFailedFmt    = "could not stat destination filesystem: %v"
	PreflightDiskShortFmt       = "available space %s is less than home size %s; relocation may need a full copy"
	PreflightDiskShortRecommend = "Free up space on the destination filesystem, or re-run with --force to proceed anyway."
	PreflightDiskOKFmt          = "available space %s covers home size %s"

	PreflightSSHFound            = "SSH key material present"
	PreflightSSHMissing          = "no SSH key material found under ~/.ssh"
	PreflightSSHMissingRecommend = "Ensure you have console access before renaming the account."

	PreflightExternalSymlinksFmt = "%d symlink(s) point outside the home directory; they remain valid after the rename"

	PreflightServiceActiveFmt       = "service %s is active and will be stopped"
	PreflightServiceActiveRecommend = "The agent stops during migration and is not restarted automatically."

	PreflightSessionStoresFmt       = "session/credential material tied to the account identity: %s"
	PreflightSessionStoresRecommend = "External services may require re-authentication after the rename."

	PreflightOpenHandleFmt       = "process %s holds an open file under home: %s"
	PreflightOpenHandleRecommend = "Stop remaining processes before migrating, or let StopServices terminate them."

	PreflightCrontabFmt = "scheduled-task table has %d entries; they will be migrated"
)
