package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/openclaw-migrate/internal/sysexec"
	"github.com/openclaw/openclaw-migrate/internal/testutil"
)

func newExec(t *testing.T, dryRun bool) *sysexec.Executor {
	t.Helper()
	return sysexec.New(sysexec.RealSystem{}, sysexec.Options{DryRun: dryRun, Out: &bytes.Buffer{}, Logger: zerolog.Nop()})
}

func TestIsActive(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStubWithOutput(t, stubs, "systemctl", "active\n", 0)
	testutil.PrependPath(t, stubs)
	assert.True(t, IsActive(sysexec.RealSystem{}, "openclaw.service"))

	testutil.WriteStubWithOutput(t, stubs, "systemctl", "inactive\n", 3)
	assert.False(t, IsActive(sysexec.RealSystem{}, "openclaw.service"))
}

func TestIsEnabled(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStubWithOutput(t, stubs, "systemctl", "enabled\n", 0)
	testutil.PrependPath(t, stubs)
	assert.True(t, IsEnabled(sysexec.RealSystem{}, "openclaw.service"))

	testutil.WriteStubWithOutput(t, stubs, "systemctl", "disabled\n", 1)
	assert.False(t, IsEnabled(sysexec.RealSystem{}, "openclaw.service"))
}

func TestStopDisableRecordCommands(t *testing.T) {
	stubs := t.TempDir()
	log := filepath.Join(t.TempDir(), "calls.log")
	testutil.WriteRecordingStub(t, stubs, "systemctl", log)
	testutil.WriteRecordingStub(t, stubs, "loginctl", log)
	testutil.PrependPath(t, stubs)

	exec := newExec(t, false)
	require.NoError(t, Stop(exec, "clawdbot.service"))
	require.NoError(t, Disable(exec, "clawdbot.service"))
	require.NoError(t, DaemonReload(exec))
	require.NoError(t, TerminateSession(exec, "clawdbot"))

	data, err := os.ReadFile(log)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "systemctl stop clawdbot.service", lines[0])
	assert.Equal(t, "systemctl disable clawdbot.service", lines[1])
	assert.Equal(t, "systemctl daemon-reload", lines[2])
	assert.Equal(t, "loginctl terminate-user clawdbot", lines[3])
}

func TestKillRemainingNoProcesses(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStubWithExit(t, stubs, "pgrep", 1)
	testutil.PrependPath(t, stubs)

	exec := newExec(t, false)
	require.NoError(t, KillRemaining(exec, "clawdbot", time.Second))
	assert.Empty(t, exec.Actions(), "nothing to kill, nothing recorded")
}

func TestKillRemainingEscalatesToKill(t *testing.T) {
	stubs := t.TempDir()
	log := filepath.Join(t.TempDir(), "calls.log")
	testutil.WriteStub(t, stubs, "pgrep")
	testutil.WriteRecordingStub(t, stubs, "pkill", log)
	testutil.PrependPath(t, stubs)

	exec := newExec(t, false)
	require.NoError(t, KillRemaining(exec, "clawdbot", 0))

	data, err := os.ReadFile(log)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "pkill -TERM -u clawdbot", lines[0])
	assert.Equal(t, "pkill -KILL -u clawdbot", lines[1])
}

func TestKillRemainingDryRunDescribesWorstCase(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStub(t, stubs, "pgrep")
	testutil.WriteStubWithExit(t, stubs, "pkill", 1)
	testutil.PrependPath(t, stubs)

	exec := newExec(t, true)
	start := time.Now()
	require.NoError(t, KillRemaining(exec, "clawdbot", 30*time.Second))
	assert.Less(t, time.Since(start), time.Second, "describe mode skips the grace wait")
	require.Len(t, exec.Actions(), 2, "TERM and the worst-case KILL are both described")
}

func TestSystemUnitFile(t *testing.T) {
	if SystemUnitFile(sysexec.RealSystem{}, "no-such-unit-xyzzy.service") != "" {
		t.Fatal("missing unit should resolve to empty path")
	}
}

func TestUserUnitFiles(t *testing.T) {
	home := t.TempDir()
	unitDir := filepath.Join(home, ".config", "systemd", "user")
	require.NoError(t, os.MkdirAll(unitDir, 0o755))
	for _, name := range []string{"clawdbot.service", "backup.timer", "watch.path", "notes.txt", "dead.socket"} {
		require.NoError(t, os.WriteFile(filepath.Join(unitDir, name), []byte("[Unit]"), 0o644))
	}

	exec := newExec(t, false)
	files := UserUnitFiles(exec, home)
	assert.Equal(t, []string{
		filepath.Join(unitDir, "backup.timer"),
		filepath.Join(unitDir, "clawdbot.service"),
		filepath.Join(unitDir, "watch.path"),
	}, files)
}

func TestUserUnitFilesSeesRelocatedHome(t *testing.T) {
	dir := t.TempDir()
	oldHome := filepath.Join(dir, "oldhome")
	unitDir := filepath.Join(oldHome, ".config", "systemd", "user")
	require.NoError(t, os.MkdirAll(unitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(unitDir, "clawdbot.service"), []byte("[Unit]"), 0o644))

	exec := newExec(t, true)
	newHome := filepath.Join(dir, "newhome")
	require.NoError(t, exec.Move(oldHome, newHome))

	files := UserUnitFiles(exec, newHome)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(newHome, ".config", "systemd", "user", "clawdbot.service"), files[0])
}

func TestRemoveUnitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clawdbot.service")
	require.NoError(t, os.WriteFile(path, []byte("[Unit]"), 0o644))

	exec := newExec(t, false)
	require.NoError(t, RemoveUnitFile(exec, path))
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, RemoveUnitFile(exec, path), "second removal is a no-op")
	assert.Len(t, exec.Actions(), 1)
}
