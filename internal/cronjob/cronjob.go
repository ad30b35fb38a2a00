// Package cronjob reads and replaces a user's scheduled-task table.
package cronjob

import (
	"fmt"
	"strings"

	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Read returns the user's crontab content. ok is false when the user has no
// crontab; crontab exits non-zero for that case as well as real failures, so
// absence is detected from the output text.
func Read(sys sysexec.System, username string) (string, bool, error) {
	out, err := sys.Run("crontab", "-l", "-u", username)
	if err != nil {
		if strings.Contains(string(out), "no crontab") {
			return "", false, nil
		}
		return "", false, fmt.Errorf(messages.CronReadFailedFmt, username, err)
	}
	return string(out), true, nil
}

// Install replaces the user's crontab with content via stdin.
func Install(exec *sysexec.Executor, username string, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return exec.RunInput([]byte(content), "crontab", "-u", username, "-")
}

// RemoveTable deletes the user's crontab. Used after a rename moved the table
// to the new login, since the spool entry stays filed under the old one.
func RemoveTable(exec *sysexec.Executor, username string) error {
	return exec.Run("crontab", "-r", "-u", username)
}
