package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/openclaw-migrate/internal/discover"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

var testOpts = Options{
	Aliases:          []string{"clawdbot", "moltbot"},
	Markers:          []string{"AGENTS.md", "SOUL.md"},
	ConventionalDirs: []string{"openclaw", "workspace", "clawd"},
}

func writeMarker(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "AGENTS.md"), []byte("# agents"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeConfig(t *testing.T, home string, workspace string) string {
	t.Helper()
	dir := filepath.Join(home, ".openclaw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "openclaw.json")
	content := `{"workspace": "` + workspace + `", "gateway": {"port": 18789}}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestResolveConfiguredPathWins(t *testing.T) {
	home := t.TempDir()
	configured := filepath.Join(home, "my-space")
	require.NoError(t, os.MkdirAll(configured, 0o755))
	writeMarker(t, filepath.Join(home, "workspace"))
	file := writeConfig(t, home, configured)

	record := &discover.Record{Home: home, ConfigFile: file}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, configured, res.Path)
	assert.Equal(t, SourceConfig, res.Source)
	require.Len(t, res.Conflicts, 1)
	assert.Contains(t, res.Conflicts[0], filepath.Join(home, "workspace"))
}

func TestResolveConfiguredTildeExpansion(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "space"), 0o755))
	file := writeConfig(t, home, "~/space")

	record := &discover.Record{Home: home, ConfigFile: file}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, filepath.Join(home, "space"), res.Path)
	assert.Equal(t, SourceConfig, res.Source)
}

func TestResolveConfiguredMissingIsConflictNotWinner(t *testing.T) {
	home := t.TempDir()
	file := writeConfig(t, home, filepath.Join(home, "gone"))
	writeMarker(t, filepath.Join(home, ".openclaw", "workspace"))

	record := &discover.Record{Home: home, ConfigFile: file}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, filepath.Join(home, ".openclaw", "workspace"), res.Path)
	assert.Equal(t, SourceStandard, res.Source)
	require.Len(t, res.Conflicts, 1)
	assert.Contains(t, res.Conflicts[0], "gone")
}

func TestResolvePriorityOrder(t *testing.T) {
	home := t.TempDir()
	writeMarker(t, filepath.Join(home, ".openclaw", "workspace"))
	writeMarker(t, filepath.Join(home, "clawd"))
	writeMarker(t, filepath.Join(home, "moltbot"))

	record := &discover.Record{Home: home}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, filepath.Join(home, ".openclaw", "workspace"), res.Path)
	assert.Equal(t, SourceStandard, res.Source)
	assert.Len(t, res.Conflicts, 2)
}

func TestResolveLegacyDirLast(t *testing.T) {
	home := t.TempDir()
	writeMarker(t, filepath.Join(home, "clawdbot"))

	record := &discover.Record{Home: home}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, filepath.Join(home, "clawdbot"), res.Path)
	assert.Equal(t, SourceLegacy, res.Source)
	assert.Empty(t, res.Conflicts)
}

func TestResolveDirWithoutMarkerIgnored(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "workspace"), 0o755))

	record := &discover.Record{Home: home}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Empty(t, res.Path)
	assert.Empty(t, res.Conflicts)
}

func TestResolveDeduplicatesConfiguredStandard(t *testing.T) {
	home := t.TempDir()
	standard := filepath.Join(home, ".openclaw", "workspace")
	writeMarker(t, standard)
	file := writeConfig(t, home, "~/.openclaw/workspace")

	record := &discover.Record{Home: home, ConfigFile: file}
	res := Resolve(sysexec.RealSystem{}, record, testOpts)
	assert.Equal(t, standard, res.Path)
	assert.Equal(t, SourceConfig, res.Source)
	assert.Empty(t, res.Conflicts, "same path from two sources is one hit")
}
