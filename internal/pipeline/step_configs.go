package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/openclaw/openclaw-migrate/internal/config"
	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/rewrite"
	"github.com/openclaw/openclaw-migrate/internal/services"
)

// knownConfigNames are the files inside the config dir whose content is
// rewritten for the new home path.
func knownConfigNames(ctx *Context) []string {
	names := []string{
		layout.CanonicalConfig,
		layout.CanonicalConfig + ".bak",
		".env",
	}
	for _, alias := range ctx.Aliases {
		names = append(names, alias+".json", alias+".json.bak")
	}
	return names
}

// runUpdateConfigs folds legacy config directories and files into the
// canonical names and rewrites every old-home and legacy-alias path inside
// them. Never overwrites: an occupied canonical name wins and the duplicate
// is reported or removed.
func runUpdateConfigs(ctx *Context) error {
	canonicalDir := layout.ConfigDir(ctx.NewHome)

	if ctx.Plan.MigrateLegacyDirs {
		for _, alias := range ctx.Aliases {
			legacyDir := filepath.Join(ctx.NewHome, "."+alias)
			if !ctx.Exec.IsDir(legacyDir) || ctx.Exec.IsSymlink(legacyDir) {
				continue
			}
			if ctx.Exec.Exists(canonicalDir) {
				ctx.note(fmt.Sprintf(messages.ConfigsLegacyDirKeptFmt, legacyDir, canonicalDir))
				continue
			}
			if err := ctx.Exec.Move(legacyDir, canonicalDir); err != nil {
				return err
			}
		}
	}

	if !ctx.Exec.IsDir(canonicalDir) {
		// Nothing to rewrite yet; a later run picks this up.
		return nil
	}

	for _, name := range knownConfigNames(ctx) {
		path := filepath.Join(canonicalDir, name)
		changed, err := rewrite.File(ctx.Exec, path, ctx.PathRules)
		if err != nil {
			return err
		}
		if changed && name == ".env" {
			// A path substitution must never corrupt dotenv syntax.
			data, err := ctx.Exec.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := config.ParseAgentEnv(data); err != nil {
				return fmt.Errorf(messages.ConfigsEnvInvalidFmt, path, err)
			}
		}
	}

	canonicalFile := filepath.Join(canonicalDir, layout.CanonicalConfig)
	for _, alias := range ctx.Aliases {
		legacyFile := filepath.Join(canonicalDir, alias+".json")
		if !ctx.Exec.IsRegular(legacyFile) {
			continue
		}
		if !ctx.Exec.Exists(canonicalFile) {
			if err := ctx.Exec.Move(legacyFile, canonicalFile); err != nil {
				return err
			}
			continue
		}
		if err := ctx.Exec.Remove(legacyFile); err != nil {
			return err
		}
	}
	return nil
}

// runUpdateUserServices rewrites path references inside user-scoped
// service/timer/path unit files.
func runUpdateUserServices(ctx *Context) error {
	changed := false
	for _, path := range services.UserUnitFiles(ctx.Exec, ctx.NewHome) {
		didChange, err := rewrite.File(ctx.Exec, path, ctx.PathRules)
		if err != nil {
			return err
		}
		changed = changed || didChange
	}
	if changed {
		ctx.Log.Info().Msg("user unit files rewritten; user manager reload happens at next login")
	}
	return nil
}

// runUpdateShellConfigs rewrites path references inside the fixed set of
// shell startup files.
func runUpdateShellConfigs(ctx *Context) error {
	for _, rel := range layout.ShellStartupFiles {
		path := filepath.Join(ctx.NewHome, rel)
		if _, err := rewrite.File(ctx.Exec, path, ctx.PathRules); err != nil {
			return err
		}
	}
	return nil
}
