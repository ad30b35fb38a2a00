package preflight

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// statfsFn is a seam for tests; Statfs cannot be pointed at a fixture.
var statfsFn = unix.Statfs

// sessionStoreDirs are home-relative locations of third-party session or
// credential material tied to the account identity. The tool cannot migrate
// state it does not own; their presence means external re-authentication may
// be needed after the rename.
var sessionStoreDirs = []string{
	".openclaw/credentials",
	".wwebjs_auth",
	".config/signal",
	".config/gh",
}

// checkDiskSpace errors when the free space at the destination filesystem is
// smaller than the current home. Home relocation may degrade to a full copy
// when the rename crosses filesystems.
func (v *Validator) checkDiskSpace(_ string, oldHome string) *Result {
	used, err := v.treeSize(oldHome)
	if err != nil {
		return &Result{
			Status:    StatusWarn,
			CheckName: messages.PreflightCheckDiskSpace,
			Message:   fmt.Sprintf(messages.PreflightHomeSizeUnknownFmt, oldHome, err),
		}
	}
	var stat unix.Statfs_t
	if err := statfsFn(filepath.Dir(oldHome), &stat); err != nil {
		return &Result{
			Status:    StatusWarn,
			CheckName: messages.PreflightCheckDiskSpace,
			Message:   fmt.Sprintf(messages.PreflightStatfsFailedFmt, err),
		}
	}
	available := int64(stat.Bavail) * stat.Bsize
	if available < used {
		return &Result{
			Status:         StatusError,
			CheckName:      messages.PreflightCheckDiskSpace,
			Message:        fmt.Sprintf(messages.PreflightDiskShortFmt, formatBytes(available), formatBytes(used)),
			Recommendation: messages.PreflightDiskShortRecommend,
		}
	}
	return &Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckDiskSpace,
		Message:   fmt.Sprintf(messages.PreflightDiskOKFmt, formatBytes(available), formatBytes(used)),
	}
}

// checkSSHKeys warns when no SSH key material exists: after the rename the
// operator may lose their remote path back into the account.
func (v *Validator) checkSSHKeys(_ string, oldHome string) *Result {
	sshDir := filepath.Join(oldHome, ".ssh")
	entries, err := v.sys.ReadDir(sshDir)
	if err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if name == "authorized_keys" || strings.HasPrefix(name, "id_") {
				return &Result{
					Status:    StatusOK,
					CheckName: messages.PreflightCheckSSH,
					Message:   messages.PreflightSSHFound,
				}
			}
		}
	}
	return &Result{
		Status:         StatusWarn,
		CheckName:      messages.PreflightCheckSSH,
		Message:        messages.PreflightSSHMissing,
		Recommendation: messages.PreflightSSHMissingRecommend,
	}
}

// checkExternalSymlinks notes symlinks under home that point outside it.
// They stay valid after the rename; listed for awareness only.
func (v *Validator) checkExternalSymlinks(_ string, oldHome string) *Result {
	var external []string
	_ = v.sys.WalkDir(oldHome, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		target, err := v.sys.Readlink(path)
		if err != nil {
			return nil
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		if !strings.HasPrefix(filepath.Clean(target)+string(os.PathSeparator), filepath.Clean(oldHome)+string(os.PathSeparator)) {
			external = append(external, path)
		}
		return nil
	})
	if len(external) == 0 {
		return nil
	}
	return &Result{
		Status:    StatusInfo,
		CheckName: messages.PreflightCheckSymlinks,
		Message:   fmt.Sprintf(messages.PreflightExternalSymlinksFmt, len(external)),
	}
}

// checkActiveService warns when a known unit is active for the account.
func (v *Validator) checkActiveService(oldUser string, _ string) *Result {
	for _, unit := range v.units {
		out, err := v.sys.Run("systemctl", "is-active", unit)
		if err == nil && strings.TrimSpace(string(out)) == "active" {
			return &Result{
				Status:         StatusWarn,
				CheckName:      messages.PreflightCheckService,
				Message:        fmt.Sprintf(messages.PreflightServiceActiveFmt, unit),
				Recommendation: messages.PreflightServiceActiveRecommend,
			}
		}
		out, err = v.sys.Run("systemctl", "--user", "--machine", oldUser+"@", "is-active", unit)
		if err == nil && strings.TrimSpace(string(out)) == "active" {
			return &Result{
				Status:         StatusWarn,
				CheckName:      messages.PreflightCheckService,
				Message:        fmt.Sprintf(messages.PreflightServiceActiveFmt, unit),
				Recommendation: messages.PreflightServiceActiveRecommend,
			}
		}
	}
	return nil
}

// checkSessionStores warns about credential material tied to the account.
func (v *Validator) checkSessionStores(_ string, oldHome string) *Result {
	var found []string
	for _, dir := range sessionStoreDirs {
		if info, err := v.sys.Stat(filepath.Join(oldHome, dir)); err == nil && info.IsDir() {
			found = append(found, dir)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return &Result{
		Status:         StatusWarn,
		CheckName:      messages.PreflightCheckSessions,
		Message:        fmt.Sprintf(messages.PreflightSessionStoresFmt, strings.Join(found, ", ")),
		Recommendation: messages.PreflightSessionStoresRecommend,
	}
}

// checkOpenHandles warns when a live process holds a file open under home.
func (v *Validator) checkOpenHandles(_ string, oldHome string) *Result {
	procs, err := v.sys.ReadDir("/proc")
	if err != nil {
		return nil
	}
	prefix := filepath.Clean(oldHome) + string(os.PathSeparator)
	for _, proc := range procs {
		if _, err := strconv.Atoi(proc.Name()); err != nil {
			continue
		}
		fdDir := filepath.Join("/proc", proc.Name(), "fd")
		fds, err := v.sys.ReadDir(fdDir)
		if err != nil {
			continue
		}
		for _, fd := range fds {
			target, err := v.sys.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			if strings.HasPrefix(target, prefix) {
				return &Result{
					Status:         StatusWarn,
					CheckName:      messages.PreflightCheckHandles,
					Message:        fmt.Sprintf(messages.PreflightOpenHandleFmt, proc.Name(), target),
					Recommendation: messages.PreflightOpenHandleRecommend,
				}
			}
		}
	}
	return nil
}

// checkCrontab notes a non-empty scheduled-task table; it will be migrated.
func (v *Validator) checkCrontab(oldUser string, _ string) *Result {
	out, err := v.sys.Run("crontab", "-l", "-u", oldUser)
	if err != nil {
		return nil
	}
	lines := 0
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			lines++
		}
	}
	if lines == 0 {
		return nil
	}
	return &Result{
		Status:    StatusInfo,
		CheckName: messages.PreflightCheckCrontab,
		Message:   fmt.Sprintf(messages.PreflightCrontabFmt, lines),
	}
}

// treeSize sums regular file sizes under root.
func (v *Validator) treeSize(root string) (int64, error) {
	var total int64
	err := v.sys.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
