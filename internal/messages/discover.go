package messages

// Discovery and workspace-resolution messages.
const (
	WorkspaceConfiguredMissingFmt = "configured workspace %s does not exist"
	WorkspaceConflictFmt          = "additional workspace candidate %s (%s) ignored; contents are not merged"
)
