// Package workspace determines the authoritative user-content directory among
// several candidate locations. First hit in strict priority order wins; every
// later hit is surfaced as a conflict, never merged. Workspace content is
// irreplaceable user data, so resolution favors visibility over convenience.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Source classifies where the chosen workspace path came from.
const (
	SourceConfig   = "config"
	SourceStandard = "standard"
	SourceCustom   = "custom"
	SourceLegacy   = "legacy"
)

// Resolution is the outcome of workspace resolution.
type Resolution struct {
	Path      string
	Source    string
	Conflicts []string
}

// Options carries the effective detection lists (built-ins plus tool config).
type Options struct {
	Aliases          []string
	Markers          []string
	ConventionalDirs []string
}

// Resolve evaluates the candidate workspace locations for record in priority
// order: configured path, canonical default, conventional custom locations,
// legacy user-named directories.
func Resolve(sys sysexec.System, record *discover.Record, opts Options) Resolution {
	res := Resolution{}

	type hit struct {
		path   string
		source string
	}
	var hits []hit

	if configured := configuredPath(sys, record); configured != "" {
		expanded := layout.ExpandTilde(configured, record.Home)
		if isDir(sys, expanded) {
			hits = append(hits, hit{expanded, SourceConfig})
		} else {
			res.Conflicts = append(res.Conflicts,
				fmt.Sprintf(messages.WorkspaceConfiguredMissingFmt, configured))
		}
	}

	standard := layout.DefaultWorkspace(record.Home)
	if hasMarker(sys, standard, opts.Markers) {
		hits = append(hits, hit{standard, SourceStandard})
	}

	for _, dir := range opts.ConventionalDirs {
		path := filepath.Join(record.Home, dir)
		if path != standard && hasMarker(sys, path, opts.Markers) {
			hits = append(hits, hit{path, SourceCustom})
		}
	}

	for _, alias := range opts.Aliases {
		path := filepath.Join(record.Home, alias)
		if hasMarker(sys, path, opts.Markers) {
			hits = append(hits, hit{path, SourceLegacy})
		}
	}

	seen := map[string]bool{}
	for _, h := range hits {
		if seen[h.path] {
			continue
		}
		seen[h.path] = true
		if res.Path == "" {
			res.Path = h.path
			res.Source = h.source
			continue
		}
		res.Conflicts = append(res.Conflicts,
			fmt.Sprintf(messages.WorkspaceConflictFmt, h.path, h.source))
	}
	return res
}

// OptionsFromScanner derives resolver options from the discovery scanner so
// both components reason about the same legacy names and markers.
func OptionsFromScanner(s *discover.Scanner) Options {
	return Options{
		Aliases:          s.Aliases(),
		Markers:          s.Markers(),
		ConventionalDirs: s.WorkspaceDirs(),
	}
}

// configuredPath reads the workspace field from the record's config file.
func configuredPath(sys sysexec.System, record *discover.Record) string {
	if record.ConfigFile == "" {
		return ""
	}
	data, err := sys.ReadFile(record.ConfigFile)
	if err != nil {
		return ""
	}
	agent, err := config.ParseAgentConfig(data)
	if err != nil {
		return ""
	}
	return agent.Workspace()
}

func isDir(sys sysexec.System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.IsDir()
}

func hasMarker(sys sysexec.System, dir string, markers []string) bool {
	for _, marker := range markers {
		info, err := sys.Stat(filepath.Join(dir, marker))
		if err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}
