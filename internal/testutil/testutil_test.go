package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "ok-stub")
	WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	cmd := exec.Command(stubPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected success exit, got %v", err)
	}
}

func TestWriteStubWithExitCreatesExecutableWithRequestedExitCode(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "exit-stub")
	WriteStubWithExit(t, dir, "exit-stub", 7)

	cmd := exec.Command(stubPath)
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected non-zero exit status")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
}

func TestWriteStubWithOutputPrintsAndExits(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithOutput(t, dir, "out-stub", "inactive\n", 3)

	out, err := exec.Command(filepath.Join(dir, "out-stub")).Output()
	if err == nil {
		t.Fatal("expected non-zero exit status")
	}
	if string(out) != "inactive\n" {
		t.Fatalf("expected stub output %q, got %q", "inactive\n", string(out))
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.ExitCode())
	}
}

func TestWriteRecordingStubLogsInvocations(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "calls.log")
	WriteRecordingStub(t, dir, "rec-stub", logFile)

	if err := exec.Command(filepath.Join(dir, "rec-stub"), "first", "call").Run(); err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if err := exec.Command(filepath.Join(dir, "rec-stub"), "second").Run(); err != nil {
		t.Fatalf("run stub: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 logged calls, got %d: %q", len(lines), lines)
	}
	if lines[0] != "rec-stub first call" || lines[1] != "rec-stub second" {
		t.Fatalf("unexpected log content: %q", lines)
	}
}

func TestPrependPathShadowsSystemCommands(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "true", 9)
	PrependPath(t, dir)

	path, err := exec.LookPath("true")
	if err != nil {
		t.Fatalf("lookpath: %v", err)
	}
	if path != filepath.Join(dir, "true") {
		t.Fatalf("expected stub to shadow system binary, resolved %q", path)
	}
}
