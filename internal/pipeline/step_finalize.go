package pipeline

import (
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/cronjob"
	"github.com/openclaw/openclaw-migrate/internal/layout"
)

// runUpdateScheduledTasks rewrites path references inside the target user's
// crontab. On a rename run the old login no longer resolves, so the table
// captured before the rename (and cleared from the spool in stage 2) is
// rewritten and installed for the new login. Otherwise the table is rewritten
// in place. No-op when no table exists or it is already clean.
func runUpdateScheduledTasks(ctx *Context) error {
	user := ctx.Plan.TargetUser()
	if ctx.Plan.RenameUser {
		if !ctx.HasOldCrontab {
			return nil
		}
		updated, _ := ctx.PathRules.Apply(ctx.OldCrontab)
		return cronjob.Install(ctx.Exec, user, updated)
	}
	content, ok, err := cronjob.Read(ctx.Sys(), user)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if ctx.PathRules.Matches(content) {
		updated, _ := ctx.PathRules.Apply(content)
		return cronjob.Install(ctx.Exec, user, updated)
	}
	return nil
}

// runFixOwnership assigns the owning account over the new home and any
// external workspace, then tightens modes on sensitive files: owner-only on
// the config and env files, owner-only traversal on the credentials dir.
func runFixOwnership(ctx *Context) error {
	if err := ctx.Exec.ChownTree(ctx.NewHome, ctx.UID, ctx.GID); err != nil {
		return err
	}
	if ctx.ExternalWorkspace() {
		// Still in place only when standardization was off; otherwise the
		// tree already moved under the new home and is covered above.
		ws := ctx.Workspace.Path
		if ctx.Exec.IsDir(ws) && !ctx.Exec.IsSymlink(ws) {
			if err := ctx.Exec.ChownTree(ws, ctx.UID, ctx.GID); err != nil {
				return err
			}
		}
	}

	configDir := layout.ConfigDir(ctx.NewHome)
	for _, name := range []string{layout.CanonicalConfig, ".env"} {
		path := filepath.Join(configDir, name)
		if !ctx.Exec.IsRegular(path) {
			continue
		}
		if mode, err := ctx.Exec.FileMode(path); err == nil && mode == 0o600 {
			continue
		}
		if err := ctx.Exec.Chmod(path, 0o600); err != nil {
			return err
		}
	}
	credentials := filepath.Join(configDir, "credentials")
	if ctx.Exec.IsDir(credentials) && !ctx.Exec.IsSymlink(credentials) {
		if mode, err := ctx.Exec.FileMode(credentials); err == nil && mode != 0o700 {
			if err := ctx.Exec.Chmod(credentials, 0o700); err != nil {
				return err
			}
		}
	}
	return nil
}

// runCreateSymlinks leaves compatibility links from every legacy path to its
// canonical replacement so unmigrated consumers keep functioning. Links are
// only created where nothing occupies the legacy path.
func runCreateSymlinks(ctx *Context) error {
	if !ctx.Plan.CreateSymlinks {
		return nil
	}

	if ctx.OldHome != ctx.NewHome && !ctx.Exec.Exists(ctx.OldHome) {
		if err := ctx.Exec.Symlink(ctx.NewHome, ctx.OldHome); err != nil {
			return err
		}
	}

	canonicalDir := layout.ConfigDir(ctx.NewHome)
	if ctx.Exec.IsDir(canonicalDir) {
		for _, alias := range ctx.Aliases {
			legacyDir := filepath.Join(ctx.NewHome, "."+alias)
			if !ctx.Exec.Exists(legacyDir) {
				if err := ctx.Exec.Symlink(canonicalDir, legacyDir); err != nil {
					return err
				}
			}
		}

		canonicalFile := filepath.Join(canonicalDir, layout.CanonicalConfig)
		if ctx.Exec.IsRegular(canonicalFile) {
			for _, alias := range ctx.Aliases {
				legacyFile := filepath.Join(canonicalDir, alias+".json")
				if !ctx.Exec.Exists(legacyFile) {
					if err := ctx.Exec.Symlink(layout.CanonicalConfig, legacyFile); err != nil {
						return err
					}
				}
			}
		}
	}

	if ctx.Plan.StandardizeWorkspace {
		canonical := layout.DefaultWorkspace(ctx.NewHome)
		old := ctx.Workspace.Path
		if ctx.ExternalWorkspace() && old != canonical {
			if !ctx.Exec.Exists(old) {
				if err := ctx.Exec.Symlink(canonical, old); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
