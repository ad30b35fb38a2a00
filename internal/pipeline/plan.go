// Package pipeline orders the migration into named, idempotent mutation
// stages. The step list is data: the same list drives dry-run and apply
// through the execution shim.
package pipeline

import (
	"fmt"

	"github.com/openclaw/openclaw-migrate/internal/accounts"
	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// Plan fixes what a migration run will do. Immutable once execution begins.
type Plan struct {
	OldUser string
	NewUser string

	RenameUser           bool
	StandardizeWorkspace bool
	MigrateLegacyDirs    bool
	CreateSymlinks       bool

	DryRun bool
	// Force overrides blocking preflight findings.
	Force bool
}

// Validate rejects impossible plans before any mutation. Target-identity
// collisions are errors: merging into an existing account is not supported.
func (p *Plan) Validate() error {
	if p.OldUser == "" {
		return fmt.Errorf(messages.PlanOldUserRequired)
	}
	if !p.RenameUser {
		if p.NewUser != "" && p.NewUser != p.OldUser {
			return fmt.Errorf(messages.PlanNewUserWithoutRenameFmt, p.NewUser)
		}
		return nil
	}
	if p.NewUser == "" {
		return fmt.Errorf(messages.PlanNewUserRequired)
	}
	if p.NewUser == p.OldUser {
		return fmt.Errorf(messages.PlanSameUserFmt, p.OldUser)
	}
	if !accounts.ValidUsername(p.NewUser) {
		return fmt.Errorf(messages.PlanInvalidUsernameFmt, p.NewUser)
	}
	if accounts.Exists(p.NewUser) {
		return fmt.Errorf(messages.PlanTargetExistsFmt, p.NewUser)
	}
	return nil
}

// TargetUser returns the login that owns the installation after the run.
func (p *Plan) TargetUser() string {
	if p.RenameUser {
		return p.NewUser
	}
	return p.OldUser
}
