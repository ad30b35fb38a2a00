// Package preflight computes readiness findings before any mutation. Every
// check is independent, read-only, and contributes at most one finding.
package preflight

import (
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Status classifies a finding.
type Status string

const (
	// StatusOK means the check passed without remark.
	StatusOK Status = "ok"
	// StatusInfo is informational only.
	StatusInfo Status = "info"
	// StatusWarn requires operator acknowledgment but does not block.
	StatusWarn Status = "warn"
	// StatusError blocks migration unless explicitly overridden.
	StatusError Status = "error"
)

// Result is one finding from one check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// Report aggregates every finding for a run.
type Report struct {
	Results []Result
}

// Errors returns blocking findings.
func (r *Report) Errors() []Result { return r.filter(StatusError) }

// Warnings returns findings needing acknowledgment.
func (r *Report) Warnings() []Result { return r.filter(StatusWarn) }

// Passed reports whether no blocking finding exists.
func (r *Report) Passed() bool { return len(r.Errors()) == 0 }

func (r *Report) filter(status Status) []Result {
	var out []Result
	for _, result := range r.Results {
		if result.Status == status {
			out = append(out, result)
		}
	}
	return out
}

// Validator runs the readiness checks.
type Validator struct {
	sys sysexec.System
	// units are the service unit names considered bound to the account.
	units []string
}

// NewValidator builds a Validator checking the given unit names.
func NewValidator(sys sysexec.System, units []string) *Validator {
	return &Validator{sys: sys, units: units}
}

// Validate runs every check against the old user and home. Check order is
// fixed so reports are stable across runs.
func (v *Validator) Validate(oldUser string, oldHome string) *Report {
	report := &Report{}
	checks := []func(string, string) *Result{
		v.checkDiskSpace,
		v.checkSSHKeys,
		v.checkExternalSymlinks,
		v.checkActiveService,
		v.checkSessionStores,
		v.checkOpenHandles,
		v.checkCrontab,
	}
	for _, check := range checks {
		if result := check(oldUser, oldHome); result != nil {
			report.Results = append(report.Results, *result)
		}
	}
	return report
}
