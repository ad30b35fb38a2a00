package discover

import (
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Record describes the one installation selected as migration target. Built
// once per run; the workspace fields are filled in by the workspace resolver.
type Record struct {
	OwningUser string
	Home       string
	// ConfigDir is the directory actually holding the installation's
	// configuration: canonical when present, otherwise the newest legacy dir.
	ConfigDir string
	// ConfigFile is the config file inside ConfigDir, "" when absent.
	ConfigFile string
	// LegacyConfigDir reports whether ConfigDir is a legacy-named directory.
	LegacyConfigDir bool

	WorkspacePath   string
	WorkspaceSource string
	Conflicts       []string
}

// BuildRecord inspects the selected home and locates its live configuration.
// aliases is the effective legacy alias list, newest first.
func BuildRecord(sys sysexec.System, username string, home string, aliases []string) Record {
	record := Record{OwningUser: username, Home: home}

	canonical := layout.ConfigDir(home)
	if isDirOn(sys, canonical) {
		record.ConfigDir = canonical
	} else {
		for _, alias := range aliases {
			dir := filepath.Join(home, "."+alias)
			if isDirOn(sys, dir) {
				record.ConfigDir = dir
				record.LegacyConfigDir = true
				break
			}
		}
	}
	if record.ConfigDir == "" {
		return record
	}

	names := []string{layout.CanonicalConfig}
	for _, alias := range aliases {
		names = append(names, alias+".json")
	}
	for _, name := range names {
		file := filepath.Join(record.ConfigDir, name)
		if isFileOn(sys, file) {
			record.ConfigFile = file
			break
		}
	}
	return record
}

func isDirOn(sys sysexec.System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.IsDir()
}

func isFileOn(sys sysexec.System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
