package pipeline

import (
	"fmt"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// Step is one named mutation stage. Fatal steps abort the run on failure;
// recoverable steps are logged, marked incomplete, and the run continues.
// Every step must be a no-op when its precondition is already satisfied, which
// is what makes whole-pipeline re-execution safe after a partial failure.
type Step struct {
	Name        string
	Description string
	Fatal       bool
	Run         func(*Context) error
}

// Steps returns the fixed stage order. The list is identical in dry-run and
// apply mode; only the shim interprets it differently.
func Steps() []Step {
	return []Step{
		{Name: "StopServices", Description: messages.StepStopServices, Run: runStopServices},
		{Name: "RenameAccount", Description: messages.StepRenameAccount, Fatal: true, Run: runRenameAccount},
		{Name: "CleanupLegacyServiceUnits", Description: messages.StepCleanupUnits, Run: runCleanupLegacyUnits},
		{Name: "UpdateConfigs", Description: messages.StepUpdateConfigs, Run: runUpdateConfigs},
		{Name: "UpdateUserServices", Description: messages.StepUpdateUserServices, Run: runUpdateUserServices},
		{Name: "UpdateShellConfigs", Description: messages.StepUpdateShellConfigs, Run: runUpdateShellConfigs},
		{Name: "MigrateWorkspace", Description: messages.StepMigrateWorkspace, Run: runMigrateWorkspace},
		{Name: "UpdateScheduledTasks", Description: messages.StepUpdateScheduledTasks, Run: runUpdateScheduledTasks},
		{Name: "FixOwnership", Description: messages.StepFixOwnership, Run: runFixOwnership},
		{Name: "CreateCompatibilitySymlinks", Description: messages.StepCreateSymlinks, Run: runCreateSymlinks},
	}
}

// StepFailure records a recoverable stage failure for the summary.
type StepFailure struct {
	Name string
	Err  error
}

// Summary is the outcome of one pipeline run.
type Summary struct {
	RunID      string
	DryRun     bool
	Completed  []string
	Incomplete []StepFailure
	Notes      []string
}

// FatalError wraps a fatal stage failure. The pipeline stops at the failed
// stage; the system is left in the state after the last completed step and a
// re-run continues from there.
type FatalError struct {
	Step string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf(messages.FatalStepFmt, e.Step, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Run drives the fixed stage list. Once started there is no cancellation:
// recovery relies on step idempotence via re-invocation, not rollback. The
// returned Summary is valid even when err is non-nil.
func Run(ctx *Context) (*Summary, error) {
	summary := &Summary{RunID: ctx.RunID, DryRun: ctx.Plan.DryRun}
	for _, step := range Steps() {
		ctx.Log.Info().Str("step", step.Name).Msg("stage start")
		ctx.Exec.Printf(messages.StepHeaderFmt, step.Name, step.Description)
		if err := step.Run(ctx); err != nil {
			if step.Fatal {
				summary.Notes = ctx.Notes
				return summary, &FatalError{Step: step.Name, Err: err}
			}
			ctx.Log.Error().Err(err).Str("step", step.Name).Msg("stage incomplete")
			summary.Incomplete = append(summary.Incomplete, StepFailure{Name: step.Name, Err: err})
			continue
		}
		summary.Completed = append(summary.Completed, step.Name)
	}
	summary.Notes = ctx.Notes
	return summary, nil
}
