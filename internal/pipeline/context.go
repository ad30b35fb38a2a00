package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openclaw/openclaw-migrate/internal/accounts"
	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/cronjob"
	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/rewrite"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
	"github.com/openclaw/openclaw-migrate/internal/workspace"
)

// Context carries everything a step needs. One Context per run; steps mutate
// the host through Exec, never through ambient globals.
type Context struct {
	RunID  string
	Plan   *Plan
	Record *discover.Record
	// Resolved workspace, in pre-migration (old home) coordinates.
	Workspace workspace.Resolution

	Exec *sysexec.Executor
	Log  zerolog.Logger

	// OldHome and NewHome differ only when the account is renamed.
	OldHome string
	NewHome string

	// PathRules fold old-home and legacy-alias paths into the new layout.
	PathRules rewrite.Rules

	// UID and GID of the owning account. usermod -l preserves both, so they
	// are captured from the old account before any rename.
	UID int
	GID int

	Aliases []string
	Grace   time.Duration

	// The scheduled-task table is keyed by login, so a rename orphans it in
	// the spool. It is captured here before any mutation; stage 2 clears the
	// old entry and stage 8 reinstalls the rewritten table for the new login.
	OldCrontab    string
	HasOldCrontab bool

	// Notes collects recoverable findings (merge collisions, skipped files)
	// for the final summary.
	Notes []string
}

// NewContext assembles the execution context for a validated plan.
func NewContext(
	plan *Plan,
	record *discover.Record,
	ws workspace.Resolution,
	cfg *config.Config,
	exec *sysexec.Executor,
	log zerolog.Logger,
) (*Context, error) {
	uid, gid, err := accounts.IDs(plan.OldUser)
	if err != nil {
		return nil, err
	}

	oldHome := record.Home
	newHome := oldHome
	if plan.RenameUser {
		newHome = filepath.Join(filepath.Dir(oldHome), plan.NewUser)
	}

	var oldCrontab string
	hasOldCrontab := false
	if plan.RenameUser {
		content, ok, err := cronjob.Read(exec.System(), plan.OldUser)
		if err != nil {
			return nil, err
		}
		oldCrontab, hasOldCrontab = content, ok
	}

	aliases := append(append([]string{}, layout.LegacyAliases...), cfg.Aliases.Extra...)
	legacyDirs := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		legacyDirs = append(legacyDirs, "."+alias)
	}

	runID := uuid.NewString()
	return &Context{
		RunID:         runID,
		Plan:          plan,
		Record:        record,
		Workspace:     ws,
		Exec:          exec,
		Log:           log.With().Str("run_id", runID).Logger(),
		OldHome:       oldHome,
		NewHome:       newHome,
		PathRules:     rewrite.HomeRules(oldHome, newHome, legacyDirs, layout.CanonicalConfigDir),
		UID:           uid,
		GID:           gid,
		Aliases:       aliases,
		Grace:         time.Duration(cfg.Pipeline.GracePeriodSeconds) * time.Second,
		OldCrontab:    oldCrontab,
		HasOldCrontab: hasOldCrontab,
	}, nil
}

// Sys is shorthand for the read side of the shim.
func (c *Context) Sys() sysexec.System { return c.Exec.System() }

// AllUnits returns the canonical unit plus one per effective alias.
func (c *Context) AllUnits() []string {
	units := []string{layout.CanonicalUnit}
	for _, alias := range c.Aliases {
		units = append(units, alias+".service")
	}
	return units
}

// LegacyUnits returns one unit name per effective alias.
func (c *Context) LegacyUnits() []string {
	units := make([]string, 0, len(c.Aliases))
	for _, alias := range c.Aliases {
		units = append(units, alias+".service")
	}
	return units
}

// CurrentWorkspace maps the resolved workspace path into post-rename
// coordinates: a workspace under the old home moves with it.
func (c *Context) CurrentWorkspace() string {
	if c.Workspace.Path == "" || c.ExternalWorkspace() {
		return c.Workspace.Path
	}
	rel, err := filepath.Rel(c.OldHome, c.Workspace.Path)
	if err != nil {
		return c.Workspace.Path
	}
	return filepath.Join(c.NewHome, rel)
}

// ExternalWorkspace reports whether the resolved workspace lives outside the
// home directory.
func (c *Context) ExternalWorkspace() bool {
	if c.Workspace.Path == "" {
		return false
	}
	rel, err := filepath.Rel(c.OldHome, c.Workspace.Path)
	return err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// note records a recoverable finding for the summary.
func (c *Context) note(msg string) {
	c.Notes = append(c.Notes, msg)
	c.Log.Warn().Msg(msg)
}
