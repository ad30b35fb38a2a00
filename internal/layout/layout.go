// Package layout defines the canonical OpenClaw installation layout and the
// legacy names it supersedes. Every other package resolves names through this
// one so a rebrand touches exactly one file.
package layout

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Canonical naming. The config directory lives directly under the owning
// user's home.
const (
	CanonicalName      = "openclaw"
	CanonicalConfigDir = ".openclaw"
	CanonicalConfig    = "openclaw.json"
	CanonicalUnit      = "openclaw.service"
	WorkspaceDirName   = "workspace"

	// WorkspaceField is the openclaw.json key holding the workspace path.
	WorkspaceField = "workspace"

	// CanonicalWorkspaceRel is the tilde-relative form written back into
	// openclaw.json after a standardizing migration.
	CanonicalWorkspaceRel = "~/" + CanonicalConfigDir + "/" + WorkspaceDirName
)

// LegacyAliases are prior project names, newest first. On-disk artifacts named
// after any of them are folded into the canonical layout.
var LegacyAliases = []string{"clawdbot", "moltbot"}

// CanonicalSubdirs are the directories of a fully standardized config dir.
var CanonicalSubdirs = []string{"agents", "credentials", "cron", "devices", WorkspaceDirName}

// MarkerFiles indicate that a directory holds user-authored workspace content.
var MarkerFiles = []string{"AGENTS.md", "SOUL.md", "MEMORY.md", "USER.md"}

// WorkspaceDocs are the workspace markdown files whose embedded paths are
// rewritten during migration. Superset of MarkerFiles.
var WorkspaceDocs = []string{"AGENTS.md", "SOUL.md", "MEMORY.md", "USER.md", "TOOLS.md", "IDENTITY.md"}

// ShellStartupFiles are the home-relative shell files checked for path
// references during migration.
var ShellStartupFiles = []string{
	".bashrc",
	".bash_profile",
	".profile",
	".zshrc",
	".zprofile",
	".config/fish/config.fish",
}

// ConventionalWorkspaceDirs are home-relative directories conventionally used
// as workspaces outside the canonical location.
var ConventionalWorkspaceDirs = []string{
	"openclaw",
	"workspace",
	"clawd",
}

// ConfigDir returns the canonical config directory for a home.
func ConfigDir(home string) string {
	return filepath.Join(home, CanonicalConfigDir)
}

// ConfigFile returns the canonical config file path for a home.
func ConfigFile(home string) string {
	return filepath.Join(ConfigDir(home), CanonicalConfig)
}

// DefaultWorkspace returns the canonical workspace path for a home.
func DefaultWorkspace(home string) string {
	return filepath.Join(ConfigDir(home), WorkspaceDirName)
}

// UserUnitDir returns the user-scoped systemd unit directory for a home.
func UserUnitDir(home string) string {
	return filepath.Join(home, ".config", "systemd", "user")
}

// ExpandTilde resolves a leading ~ against the given home. It deliberately
// does not consult the current process environment: migration always reasons
// about the migrated user's home, not the invoker's.
func ExpandTilde(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ContractTilde rewrites an absolute path under home into ~/ form.
func ContractTilde(path string, home string) string {
	if path == home {
		return "~"
	}
	if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
		return "~/" + filepath.ToSlash(rel)
	}
	return path
}

// InvokerHome returns the invoking user's home directory. Used only for
// defaults in read-only commands; mutation paths always carry an explicit home.
func InvokerHome() (string, error) {
	return homedir.Dir()
}
