package sysexec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// writeFileAtomic writes data to a sibling temp file and renames it over name.
func writeFileAtomic(name string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(name)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.SysWriteTempCreateFmt, name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.SysWriteTempChmodFmt, name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.SysWriteTempWriteFmt, name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.SysWriteTempSyncFmt, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.SysWriteTempCloseFmt, name, err)
	}
	if err := os.Rename(tmpName, name); err != nil {
		return fmt.Errorf(messages.SysWriteTempRenameFmt, name, err)
	}
	return nil
}
