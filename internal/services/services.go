// Package services wraps the service manager and process termination for the
// migrated account. Queries run directly; mutations go through the shim.
package services

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

const systemUnitDir = "/etc/systemd/system"

// IsActive reports whether a system-level unit is currently active.
func IsActive(sys sysexec.System, unit string) bool {
	out, err := sys.Run("systemctl", "is-active", unit)
	return err == nil && strings.TrimSpace(string(out)) == "active"
}

// IsEnabled reports whether a system-level unit is enabled.
func IsEnabled(sys sysexec.System, unit string) bool {
	out, err := sys.Run("systemctl", "is-enabled", unit)
	return err == nil && strings.TrimSpace(string(out)) == "enabled"
}

// Stop stops a system-level unit.
func Stop(exec *sysexec.Executor, unit string) error {
	return exec.Run("systemctl", "stop", unit)
}

// Disable disables a system-level unit.
func Disable(exec *sysexec.Executor, unit string) error {
	return exec.Run("systemctl", "disable", unit)
}

// DaemonReload reloads unit definitions after files were removed or rewritten.
func DaemonReload(exec *sysexec.Executor) error {
	return exec.Run("systemctl", "daemon-reload")
}

// TerminateSession ends every login session of the user.
func TerminateSession(exec *sysexec.Executor, username string) error {
	return exec.Run("loginctl", "terminate-user", username)
}

// HasProcesses reports whether the user still owns running processes.
func HasProcesses(sys sysexec.System, username string) bool {
	_, err := sys.Run("pgrep", "-u", username)
	return err == nil
}

// KillRemaining sends the user's processes a graceful signal, waits out the
// grace period, then force-kills whatever survived.
func KillRemaining(exec *sysexec.Executor, username string, grace time.Duration) error {
	sys := exec.System()
	if !HasProcesses(sys, username) {
		return nil
	}
	if err := exec.Run("pkill", "-TERM", "-u", username); err != nil {
		return err
	}
	exec.Settle(grace, 200*time.Millisecond, func() bool {
		return !HasProcesses(sys, username)
	})
	if HasProcesses(sys, username) {
		return exec.Run("pkill", "-KILL", "-u", username)
	}
	return nil
}

// SystemUnitFile returns the path of a system-level unit file, or "" when the
// unit is not installed as a file (or is merely a symlinked alias).
func SystemUnitFile(sys sysexec.System, unit string) string {
	path := filepath.Join(systemUnitDir, unit)
	if info, err := sys.Lstat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}

// UserUnitFiles lists service/timer/path unit files in the home's user unit
// directory, sorted lexicographically. Reads go through the shim so a home
// relocated earlier in the same run is still visible in describe mode.
func UserUnitFiles(exec *sysexec.Executor, home string) []string {
	unitDir := layout.UserUnitDir(home)
	names, err := exec.ReadDirNames(unitDir)
	if err != nil {
		return nil
	}
	var files []string
	for _, name := range names {
		switch filepath.Ext(name) {
		case ".service", ".timer", ".path":
			path := filepath.Join(unitDir, name)
			if exec.IsRegular(path) {
				files = append(files, path)
			}
		}
	}
	return files
}

// RemoveUnitFile deletes a unit file through the shim.
func RemoveUnitFile(exec *sysexec.Executor, path string) error {
	if !exec.Exists(path) {
		return nil
	}
	return exec.Remove(path)
}
