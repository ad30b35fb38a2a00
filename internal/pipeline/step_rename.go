package pipeline

import (
	"fmt"

	"github.com/openclaw/openclaw-migrate/internal/accounts"
	"github.com/openclaw/openclaw-migrate/internal/cronjob"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/sudoers"
)

// runRenameAccount renames the login and primary group, relocates the home
// directory, and migrates the privilege-grant file. Fatal: later stages
// assume the new identity exists. Safe to re-run after a partial failure —
// each piece checks whether it already happened.
func runRenameAccount(ctx *Context) error {
	if !ctx.Plan.RenameUser {
		return nil
	}

	oldExists := accounts.Exists(ctx.Plan.OldUser)
	newExists := accounts.Exists(ctx.Plan.NewUser)
	if oldExists && newExists {
		return fmt.Errorf(messages.RenameBothExistFmt, ctx.Plan.OldUser, ctx.Plan.NewUser)
	}
	if oldExists {
		if ctx.HasOldCrontab {
			// The spool entry is keyed by login and must be cleared while the
			// old login can still address it. Stage 8 reinstalls the captured
			// table for the new login.
			if err := cronjob.RemoveTable(ctx.Exec, ctx.Plan.OldUser); err != nil {
				return err
			}
		}
		if err := accounts.RenameUser(ctx.Exec, ctx.Plan.OldUser, ctx.Plan.NewUser); err != nil {
			return err
		}
		if accounts.GroupExists(ctx.Plan.OldUser) && !accounts.GroupExists(ctx.Plan.NewUser) {
			if err := accounts.RenameGroup(ctx.Exec, ctx.Plan.OldUser, ctx.Plan.NewUser); err != nil {
				return err
			}
		}
	}

	if ctx.OldHome != ctx.NewHome && homeStillAtOldPath(ctx) {
		if err := accounts.MoveHome(ctx.Exec, ctx.Plan.NewUser, ctx.OldHome, ctx.NewHome); err != nil {
			return err
		}
	}

	return sudoers.Migrate(ctx.Exec, ctx.Plan.OldUser, ctx.Plan.NewUser, ctx.PathRules)
}

// homeStillAtOldPath reports whether the old home is a real directory. After
// a completed move plus compat symlinks, the old path is a symlink and must
// not be moved again.
func homeStillAtOldPath(ctx *Context) bool {
	return ctx.Exec.Exists(ctx.OldHome) &&
		!ctx.Exec.IsSymlink(ctx.OldHome) &&
		ctx.Exec.IsDir(ctx.OldHome)
}
