package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteStubWithOutput writes an executable shell stub that prints output and
// exits with the provided code. The output bytes live in a sidecar file the
// stub cats, so no shell quoting can mangle them.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string, exitCode int) {
	t.Helper()
	outFile := filepath.Join(dir, name+".stdout")
	if err := os.WriteFile(outFile, []byte(output), 0o644); err != nil {
		t.Fatalf("write stub output: %v", err)
	}
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\ncat %q\nexit %d\n", outFile, exitCode))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteRecordingStub writes an executable shell stub that appends its
// invocation (name and args, one line per call) to logFile and exits 0.
// Stdin, if any, is appended after the argument line.
func WriteRecordingStub(t *testing.T, dir string, name string, logFile string) {
	t.Helper()
	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\necho \"%s $@\" >> %q\nif [ ! -t 0 ]; then cat >> %q; fi\nexit 0\n", name, logFile, logFile)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// PrependPath puts dir at the front of PATH for the test's duration, so
// shell stubs shadow the real system commands.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
