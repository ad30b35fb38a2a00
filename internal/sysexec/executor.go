// Package sysexec routes every mutating primitive through one indirection with
// two interpretations: describe (dry-run) and apply. Step logic never branches
// on mode; only the Executor does.
package sysexec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// sleepFn is a seam so tests do not wait out grace periods.
var sleepFn = time.Sleep

// Action is one recorded mutation. The ordered action list is identical in
// dry-run and apply mode for the same plan and fixture.
type Action struct {
	Kind        string
	Description string
}

// Mutation kinds.
const (
	KindMkdir   = "mkdir"
	KindWrite   = "write"
	KindMove    = "move"
	KindRemove  = "remove"
	KindSymlink = "symlink"
	KindChown   = "chown"
	KindChmod   = "chmod"
	KindCommand = "command"
)

// Options configures an Executor.
type Options struct {
	DryRun bool
	// Out receives one line per action. Nil discards.
	Out io.Writer
	// ShowDiffs emits a unified diff for every content rewrite. Always on in
	// dry-run mode.
	ShowDiffs    bool
	DiffMaxLines int
	Logger       zerolog.Logger
}

// Executor performs (or describes) mutations against a System.
type Executor struct {
	sys          System
	dryRun       bool
	out          io.Writer
	showDiffs    bool
	diffMaxLines int
	log          zerolog.Logger
	actions      []Action
	ov           *overlay
}

// New builds an Executor over sys.
func New(sys System, opts Options) *Executor {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Executor{
		sys:          sys,
		dryRun:       opts.DryRun,
		out:          out,
		showDiffs:    opts.ShowDiffs || opts.DryRun,
		diffMaxLines: normalizeDiffMaxLines(opts.DiffMaxLines),
		log:          opts.Logger,
		ov:           newOverlay(),
	}
}

// System exposes the underlying System for read-only queries.
func (e *Executor) System() System { return e.sys }

// DryRun reports whether the executor is in describe mode.
func (e *Executor) DryRun() bool { return e.dryRun }

// Actions returns the ordered list of mutations described or applied so far.
func (e *Executor) Actions() []Action {
	return append([]Action(nil), e.actions...)
}

// Printf writes progress text to the action output stream. Not recorded as an
// action.
func (e *Executor) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.out, format, args...)
}

// record logs the action line and, in apply mode, runs fn.
func (e *Executor) record(kind string, description string, fn func() error) error {
	e.actions = append(e.actions, Action{Kind: kind, Description: description})
	if e.dryRun {
		_, _ = fmt.Fprintf(e.out, messages.ActionDryRunLineFmt, description)
		e.log.Debug().Str("kind", kind).Msg(description)
		return nil
	}
	_, _ = fmt.Fprintf(e.out, messages.ActionLineFmt, description)
	if err := fn(); err != nil {
		e.log.Error().Err(err).Str("kind", kind).Msg(description)
		return err
	}
	e.log.Debug().Str("kind", kind).Msg(description)
	return nil
}

// MkdirAll creates path and parents. No-op when path already is a directory.
func (e *Executor) MkdirAll(path string, perm os.FileMode) error {
	if e.IsDir(path) {
		return nil
	}
	desc := fmt.Sprintf(messages.ActionMkdirFmt, path)
	err := e.record(KindMkdir, desc, func() error {
		return e.sys.MkdirAll(path, perm)
	})
	if err == nil && e.dryRun {
		// os.MkdirAll creates every missing ancestor, so the described view
		// must hold them all, not just the leaf.
		for p := filepath.Clean(path); !e.IsDir(p); {
			e.ov.noteMkdir(p, perm)
			parent := filepath.Dir(p)
			if parent == p {
				break
			}
			p = parent
		}
	}
	return err
}

// WriteFile writes data to path, emitting a content diff when enabled.
func (e *Executor) WriteFile(path string, data []byte, perm os.FileMode) error {
	old, err := e.ReadFile(path)
	if err != nil {
		old = nil
	}
	desc := fmt.Sprintf(messages.ActionWriteFmt, path, len(data))
	writeErr := e.record(KindWrite, desc, func() error {
		return e.sys.WriteFile(path, data, perm)
	})
	if writeErr != nil {
		return writeErr
	}
	if e.dryRun {
		e.ov.noteWrite(path, data, perm)
	}
	if e.showDiffs {
		e.emitDiff(path, string(old), string(data))
	}
	return nil
}

// Move renames oldpath to newpath.
func (e *Executor) Move(oldpath string, newpath string) error {
	desc := fmt.Sprintf(messages.ActionMoveFmt, oldpath, newpath)
	err := e.record(KindMove, desc, func() error {
		return e.sys.Rename(oldpath, newpath)
	})
	if err == nil && e.dryRun {
		e.ov.noteRename(oldpath, newpath)
	}
	return err
}

// Remove removes a single file or empty directory.
func (e *Executor) Remove(path string) error {
	desc := fmt.Sprintf(messages.ActionRemoveFmt, path)
	err := e.record(KindRemove, desc, func() error {
		return e.sys.Remove(path)
	})
	if err == nil && e.dryRun {
		e.ov.noteRemove(path)
	}
	return err
}

// RemoveAll removes path recursively.
func (e *Executor) RemoveAll(path string) error {
	desc := fmt.Sprintf(messages.ActionRemoveTreeFmt, path)
	err := e.record(KindRemove, desc, func() error {
		return e.sys.RemoveAll(path)
	})
	if err == nil && e.dryRun {
		e.ov.noteRemove(path)
	}
	return err
}

// Symlink creates link pointing at target.
func (e *Executor) Symlink(target string, link string) error {
	desc := fmt.Sprintf(messages.ActionSymlinkFmt, link, target)
	err := e.record(KindSymlink, desc, func() error {
		return e.sys.Symlink(target, link)
	})
	if err == nil && e.dryRun {
		e.ov.noteSymlink(target, link)
	}
	return err
}

// Chown changes ownership of a single path without following symlinks.
func (e *Executor) Chown(path string, uid int, gid int) error {
	desc := fmt.Sprintf(messages.ActionChownFmt, path, uid, gid)
	return e.record(KindChown, desc, func() error {
		return e.sys.Lchown(path, uid, gid)
	})
}

// ChownTree changes ownership of path and everything beneath it. Recorded as
// one action: per-file lines would drown the preview without adding signal.
func (e *Executor) ChownTree(path string, uid int, gid int) error {
	desc := fmt.Sprintf(messages.ActionChownTreeFmt, path, uid, gid)
	return e.record(KindChown, desc, func() error {
		return e.sys.WalkDir(path, func(p string, _ os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			return e.sys.Lchown(p, uid, gid)
		})
	})
}

// Chmod changes the mode of path.
func (e *Executor) Chmod(path string, mode os.FileMode) error {
	desc := fmt.Sprintf(messages.ActionChmodFmt, path, mode)
	err := e.record(KindChmod, desc, func() error {
		return e.sys.Chmod(path, mode)
	})
	if err == nil && e.dryRun {
		e.ov.noteChmod(path, mode)
	}
	return err
}

// Run executes a mutating command, blocking until it exits.
func (e *Executor) Run(name string, args ...string) error {
	desc := fmt.Sprintf(messages.ActionCommandFmt, name+" "+strings.Join(args, " "))
	return e.record(KindCommand, desc, func() error {
		out, err := e.sys.Run(name, args...)
		if err != nil {
			return fmt.Errorf(messages.SysCommandFailedFmt, name, err, strings.TrimSpace(string(out)))
		}
		return nil
	})
}

// Settle waits until done reports true or the grace period elapses. In
// describe mode it returns immediately; there is nothing to wait for.
func (e *Executor) Settle(grace time.Duration, poll time.Duration, done func() bool) {
	if e.dryRun {
		return
	}
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) && !done() {
		sleepFn(poll)
	}
}

// RunMove executes a mutating command whose side effect relocates oldpath to
// newpath (for example usermod -d -m), so describe mode tracks the move.
func (e *Executor) RunMove(oldpath string, newpath string, name string, args ...string) error {
	err := e.Run(name, args...)
	if err == nil && e.dryRun {
		e.ov.noteRename(oldpath, newpath)
	}
	return err
}

// RunInput executes a mutating command with data on stdin.
func (e *Executor) RunInput(input []byte, name string, args ...string) error {
	desc := fmt.Sprintf(messages.ActionCommandInputFmt, name+" "+strings.Join(args, " "), len(input))
	return e.record(KindCommand, desc, func() error {
		out, err := e.sys.RunInput(input, name, args...)
		if err != nil {
			return fmt.Errorf(messages.SysCommandFailedFmt, name, err, strings.TrimSpace(string(out)))
		}
		return nil
	})
}
