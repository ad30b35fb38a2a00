// Package discover locates an existing agent installation by scoring candidate
// home directories on independent weighted signals. Scanning is read-only.
package discover

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Signal weights. Independent: a home accumulates every signal it exhibits.
const (
	weightCanonicalDir  = 100
	weightLegacyDir     = 80
	weightCanonicalFile = 50
	weightLegacyFile    = 40
	weightUserUnit      = 30
	weightGlobalPackage = 20
	weightMarkers       = 25
)

// Home pairs a login with its home directory.
type Home struct {
	Username string
	Path     string
}

// Candidate is a scored home. Transient: discarded after selection.
type Candidate struct {
	Username string
	HomePath string
	Score    int
	Evidence []string
}

// Scanner scores homes against the canonical and legacy layout.
type Scanner struct {
	sys     sysexec.System
	aliases []string
	markers []string
	wsDirs  []string
	log     zerolog.Logger
}

// NewScanner builds a Scanner with built-in names extended by cfg.
func NewScanner(sys sysexec.System, cfg *config.Config, log zerolog.Logger) *Scanner {
	return &Scanner{
		sys:     sys,
		aliases: append(append([]string{}, layout.LegacyAliases...), cfg.Aliases.Extra...),
		markers: append(append([]string{}, layout.MarkerFiles...), cfg.Workspace.ExtraMarkerFiles...),
		wsDirs:  append(append([]string{}, layout.ConventionalWorkspaceDirs...), cfg.Workspace.ExtraDirs...),
		log:     log,
	}
}

// Aliases returns the effective legacy alias list.
func (s *Scanner) Aliases() []string {
	return append([]string(nil), s.aliases...)
}

// Markers returns the effective workspace marker file list.
func (s *Scanner) Markers() []string {
	return append([]string(nil), s.markers...)
}

// WorkspaceDirs returns the effective conventional workspace directory list.
func (s *Scanner) WorkspaceDirs() []string {
	return append([]string(nil), s.wsDirs...)
}

// Scan scores every home and returns candidates sorted by descending score,
// ties broken by lexicographic username so repeated runs agree. Homes with no
// signal at all are excluded.
func (s *Scanner) Scan(homes []Home) []Candidate {
	candidates := make([]Candidate, 0, len(homes))
	for _, home := range homes {
		candidate := s.score(home)
		if candidate.Score > 0 {
			candidates = append(candidates, candidate)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Username < candidates[j].Username
	})
	return candidates
}

// PickBest returns the top candidate, or nil when nothing scored.
func (s *Scanner) PickBest(homes []Home) *Candidate {
	candidates := s.Scan(homes)
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// Ties returns every candidate sharing the top score when more than one does.
// Callers surface ties to the operator instead of resolving them silently.
func Ties(candidates []Candidate) []Candidate {
	if len(candidates) < 2 || candidates[0].Score != candidates[1].Score {
		return nil
	}
	top := candidates[0].Score
	tied := []Candidate{}
	for _, c := range candidates {
		if c.Score == top {
			tied = append(tied, c)
		}
	}
	return tied
}

func (s *Scanner) score(home Home) Candidate {
	c := Candidate{Username: home.Username, HomePath: home.Path}

	add := func(weight int, note string) {
		c.Score += weight
		c.Evidence = append(c.Evidence, note)
	}

	if s.isDir(layout.ConfigDir(home.Path)) {
		add(weightCanonicalDir, "canonical config directory "+layout.CanonicalConfigDir)
	}
	for _, alias := range s.aliases {
		if s.isDir(filepath.Join(home.Path, "."+alias)) {
			add(weightLegacyDir, "legacy directory ."+alias)
		}
	}
	if s.isFile(layout.ConfigFile(home.Path)) {
		add(weightCanonicalFile, "canonical config file "+layout.CanonicalConfig)
	}
	for _, path := range s.legacyConfigFiles(home.Path) {
		if s.isFile(path) {
			add(weightLegacyFile, "legacy config file "+filepath.Base(path))
		}
	}
	if unit, ok := s.userUnit(home.Path); ok {
		add(weightUserUnit, "user service unit "+unit)
	}
	if pkg, ok := s.globalPackage(home.Path); ok {
		add(weightGlobalPackage, "global package "+pkg)
	}
	if dir, ok := s.workspaceMarkers(home.Path); ok {
		add(weightMarkers, "workspace markers in "+dir)
	}

	s.log.Debug().
		Str("user", home.Username).
		Str("home", home.Path).
		Int("score", c.Score).
		Strs("evidence", c.Evidence).
		Msg("scored candidate")
	return c
}

// legacyConfigFiles lists every location a legacy config file may occupy:
// inside its own legacy directory or left behind in the canonical one.
func (s *Scanner) legacyConfigFiles(home string) []string {
	paths := make([]string, 0, len(s.aliases)*2)
	for _, alias := range s.aliases {
		paths = append(paths,
			filepath.Join(home, "."+alias, alias+".json"),
			filepath.Join(layout.ConfigDir(home), alias+".json"),
		)
	}
	return paths
}

func (s *Scanner) userUnit(home string) (string, bool) {
	unitDir := layout.UserUnitDir(home)
	for _, unit := range s.allUnits() {
		if s.isFile(filepath.Join(unitDir, unit)) {
			return unit, true
		}
	}
	return "", false
}

func (s *Scanner) allUnits() []string {
	units := []string{layout.CanonicalUnit}
	for _, alias := range s.aliases {
		units = append(units, alias+".service")
	}
	return units
}

func (s *Scanner) globalPackage(home string) (string, bool) {
	names := append([]string{layout.CanonicalName}, s.aliases...)
	for _, name := range names {
		for _, prefix := range []string{
			filepath.Join(".npm-global", "lib", "node_modules"),
			filepath.Join(".local", "lib", "node_modules"),
		} {
			if s.isDir(filepath.Join(home, prefix, name)) {
				return name, true
			}
		}
	}
	return "", false
}

// workspaceMarkers probes every known workspace subpath and reports the first
// directory holding a marker file. Counted once regardless of how many match.
func (s *Scanner) workspaceMarkers(home string) (string, bool) {
	probes := []string{layout.DefaultWorkspace(home)}
	for _, dir := range s.wsDirs {
		probes = append(probes, filepath.Join(home, dir))
	}
	for _, alias := range s.aliases {
		probes = append(probes, filepath.Join(home, alias))
	}
	for _, probe := range probes {
		for _, marker := range s.markers {
			if s.isFile(filepath.Join(probe, marker)) {
				return probe, true
			}
		}
	}
	return "", false
}

func (s *Scanner) isDir(path string) bool {
	info, err := s.sys.Stat(path)
	return err == nil && info.IsDir()
}

func (s *Scanner) isFile(path string) bool {
	info, err := s.sys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
