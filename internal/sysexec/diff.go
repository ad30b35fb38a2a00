package sysexec

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// DefaultDiffMaxLines caps the per-file diff preview length.
const DefaultDiffMaxLines = 40

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

// emitDiff prints a truncated unified diff of a content rewrite.
func (e *Executor) emitDiff(path string, before string, after string) {
	if before == after {
		return
	}
	diff := strings.TrimSpace(udiff.Unified(path, path, before, after))
	if diff == "" {
		return
	}
	lines := strings.Split(diff, "\n")
	truncated := false
	if len(lines) > e.diffMaxLines {
		lines = lines[:e.diffMaxLines]
		truncated = true
	}
	for _, line := range lines {
		_, _ = fmt.Fprintf(e.out, messages.DiffLineFmt, line)
	}
	if truncated {
		_, _ = fmt.Fprintf(e.out, messages.DiffTruncatedFmt, e.diffMaxLines)
	}
}
