// Package sudoers migrates the per-user privilege-grant file under
// /etc/sudoers.d, rewriting embedded identifiers and validating the result
// before it can take effect.
package sudoers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/rewrite"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

const grantDir = "/etc/sudoers.d"

// grantPerm is the mode sudo requires for files under sudoers.d.
const grantPerm = os.FileMode(0o440)

// GrantPath returns the grant file path for a login.
func GrantPath(username string) string {
	return filepath.Join(grantDir, username)
}

// Migrate moves the old user's grant file to the new name, rewriting the
// login and any embedded home paths. A grant file that fails validation is
// deleted rather than left active. No-op when the old grant does not exist or
// the new one already does.
func Migrate(exec *sysexec.Executor, oldUser string, newUser string, pathRules rewrite.Rules) error {
	oldPath := GrantPath(oldUser)
	newPath := GrantPath(newUser)

	if exec.Exists(newPath) {
		return nil
	}
	data, err := exec.ReadFile(oldPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	content := rewriteIdentifiers(string(data), oldUser, newUser)
	content, _ = pathRules.Apply(content)

	if err := exec.WriteFile(newPath, []byte(content), grantPerm); err != nil {
		return err
	}
	if err := exec.Run("visudo", "-cf", newPath); err != nil {
		_ = exec.Remove(newPath)
		return fmt.Errorf(messages.SudoersValidateFailedFmt, newPath, err)
	}
	return exec.Remove(oldPath)
}

// rewriteIdentifiers replaces the login at rule positions: start of line and
// after runas/user list separators. A plain ReplaceAll would also hit command
// paths that merely contain the login, which the path rules handle instead.
func rewriteIdentifiers(content string, oldUser string, newUser string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, oldUser) {
			lines[i] = strings.Replace(line, oldUser, newUser, 1)
		}
	}
	return strings.Join(lines, "\n")
}
