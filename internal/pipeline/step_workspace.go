package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/rewrite"
)

// runMigrateWorkspace relocates the resolved workspace into the canonical
// location. When the canonical location already has content, the source is
// merged non-destructively (copy without overwrite) and removed; otherwise it
// is moved directly. The remaining canonical subdirectories are created, and
// the config's workspace field is rewritten to the canonical tilde-relative
// form.
func runMigrateWorkspace(ctx *Context) error {
	if !ctx.Plan.StandardizeWorkspace {
		return nil
	}
	source := ctx.CurrentWorkspace()
	if source == "" {
		return nil
	}
	canonical := layout.DefaultWorkspace(ctx.NewHome)

	if source != canonical {
		if ctx.Exec.IsDir(source) && !ctx.Exec.IsSymlink(source) {
			if hasContent(ctx, canonical) {
				if err := mergeTreeNoOverwrite(ctx, source, canonical); err != nil {
					return err
				}
				if err := ctx.Exec.RemoveAll(source); err != nil {
					return err
				}
			} else {
				if err := ctx.Exec.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
					return err
				}
				if err := ctx.Exec.Move(source, canonical); err != nil {
					return err
				}
			}
		}
	}

	for _, name := range layout.CanonicalSubdirs {
		if err := ctx.Exec.MkdirAll(filepath.Join(layout.ConfigDir(ctx.NewHome), name), 0o755); err != nil {
			return err
		}
	}

	if err := setWorkspaceField(ctx); err != nil {
		return err
	}

	for _, name := range layout.WorkspaceDocs {
		path := filepath.Join(canonical, name)
		if _, err := rewrite.File(ctx.Exec, path, ctx.PathRules); err != nil {
			return err
		}
	}
	return nil
}

// setWorkspaceField updates openclaw.json's workspace field to the canonical
// relative form. No-op when the file is missing or already canonical.
func setWorkspaceField(ctx *Context) error {
	path := layout.ConfigFile(ctx.NewHome)
	data, err := ctx.Exec.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	agent, err := config.ParseAgentConfig(data)
	if err != nil {
		return err
	}
	if agent.Workspace() == layout.CanonicalWorkspaceRel {
		return nil
	}
	if err := agent.SetWorkspace(layout.CanonicalWorkspaceRel); err != nil {
		return err
	}
	encoded, err := agent.Encode()
	if err != nil {
		return err
	}
	perm := os.FileMode(0o600)
	if mode, err := ctx.Exec.FileMode(path); err == nil {
		perm = mode
	}
	return ctx.Exec.WriteFile(path, encoded, perm)
}

// hasContent reports whether dir exists and holds at least one entry.
func hasContent(ctx *Context, dir string) bool {
	names, err := ctx.Exec.ReadDirNames(dir)
	return err == nil && len(names) > 0
}

// mergeTreeNoOverwrite copies src into dst without replacing anything.
// Same-named files with different content are left as they are at the
// destination and reported; resolving them is the operator's call.
func mergeTreeNoOverwrite(ctx *Context, src string, dst string) error {
	return ctx.Exec.WalkTree(src, func(path string, isDir bool, isRegular bool) error {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if isDir {
			return ctx.Exec.MkdirAll(target, 0o755)
		}
		if !isRegular {
			return nil
		}
		if ctx.Exec.Exists(target) {
			ctx.note(fmt.Sprintf(messages.WorkspaceMergeSkippedFmt, target))
			return nil
		}
		data, err := ctx.Exec.ReadFile(path)
		if err != nil {
			return err
		}
		perm := os.FileMode(0o644)
		if mode, err := ctx.Exec.FileMode(path); err == nil {
			perm = mode
		}
		return ctx.Exec.WriteFile(target, data, perm)
	})
}
