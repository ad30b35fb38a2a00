// Package rewrite applies an ordered list of literal path substitutions to
// file content. The rule engine is pure; file application goes through the
// execution shim so dry-run previews show real content diffs.
package rewrite

import (
	"errors"
	"os"
	"strings"

	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Rule replaces every occurrence of Old with New. Rules are applied in order,
// so longer, more specific paths must come first.
type Rule struct {
	Old string
	New string
}

// Rules is an ordered substitution list.
type Rules []Rule

// HomeRules builds the standard rule set for a home relocation: the old home
// path plus every legacy alias path folded into the new home. Longest-first
// ordering keeps ~/.clawdbot from being half-rewritten by the bare home rule.
func HomeRules(oldHome string, newHome string, legacyConfigDirs []string, canonicalConfigDir string) Rules {
	rules := make(Rules, 0, len(legacyConfigDirs)+1)
	for _, legacy := range legacyConfigDirs {
		rules = append(rules, Rule{
			Old: oldHome + "/" + legacy,
			New: newHome + "/" + canonicalConfigDir,
		})
	}
	rules = append(rules, Rule{Old: oldHome, New: newHome})
	return rules
}

// Apply runs every rule in order over content and reports whether anything
// changed.
func (rs Rules) Apply(content string) (string, bool) {
	out := content
	for _, rule := range rs {
		if rule.Old == "" || rule.Old == rule.New {
			continue
		}
		out = strings.ReplaceAll(out, rule.Old, rule.New)
	}
	return out, out != content
}

// Matches reports whether any rule's Old value occurs in content.
func (rs Rules) Matches(content string) bool {
	for _, rule := range rs {
		if rule.Old != "" && rule.Old != rule.New && strings.Contains(content, rule.Old) {
			return true
		}
	}
	return false
}

// File rewrites one file in place through the executor. Missing files are a
// no-op; unchanged files are not rewritten, which keeps re-runs quiet.
func File(exec *sysexec.Executor, path string, rules Rules) (bool, error) {
	data, err := exec.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	updated, changed := rules.Apply(string(data))
	if !changed {
		return false, nil
	}
	perm := os.FileMode(0o644)
	if mode, err := exec.FileMode(path); err == nil {
		perm = mode
	}
	if err := exec.WriteFile(path, []byte(updated), perm); err != nil {
		return false, err
	}
	return true, nil
}
