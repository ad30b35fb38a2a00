package pipeline

import (
	"github.com/openclaw/openclaw-migrate/internal/services"
)

// runStopServices stops every known current and legacy unit bound to the old
// account, ends its login session, and terminates stragglers after a bounded
// grace period. Each substage is a no-op when nothing is running.
func runStopServices(ctx *Context) error {
	sys := ctx.Sys()
	for _, unit := range ctx.AllUnits() {
		if !services.IsActive(sys, unit) {
			continue
		}
		if err := services.Stop(ctx.Exec, unit); err != nil {
			return err
		}
	}
	if services.HasProcesses(sys, ctx.Plan.OldUser) {
		if err := services.TerminateSession(ctx.Exec, ctx.Plan.OldUser); err != nil {
			return err
		}
		if err := services.KillRemaining(ctx.Exec, ctx.Plan.OldUser, ctx.Grace); err != nil {
			return err
		}
	}
	return nil
}

// runCleanupLegacyUnits disables and removes system-level unit files under
// legacy names. User-scoped units are rewritten, not removed, in a later
// stage.
func runCleanupLegacyUnits(ctx *Context) error {
	sys := ctx.Sys()
	removed := false
	for _, unit := range ctx.LegacyUnits() {
		if services.IsEnabled(sys, unit) {
			if err := services.Disable(ctx.Exec, unit); err != nil {
				return err
			}
		}
		if path := services.SystemUnitFile(sys, unit); path != "" {
			if err := services.RemoveUnitFile(ctx.Exec, path); err != nil {
				return err
			}
			removed = true
		}
	}
	if removed {
		return services.DaemonReload(ctx.Exec)
	}
	return nil
}
