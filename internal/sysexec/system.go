package sysexec

import (
	"bytes"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// System abstracts every OS operation the migration touches. Read operations
// are used freely by discovery and preflight; mutations must go through an
// Executor so dry-run and apply stay structurally identical. The interface is
// intentionally package-local-free: every package that mutates the host shares
// this one seam.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	WalkDir(root string, fn fs.WalkDirFunc) error

	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
	Rename(oldpath string, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
	Symlink(oldname string, newname string) error
	Chmod(name string, mode os.FileMode) error
	Lchown(name string, uid int, gid int) error

	// Run executes a command and returns its combined output. Pipeline code
	// must route mutating commands through Executor.Run; direct calls are for
	// read-only queries (systemctl is-active, crontab -l).
	Run(name string, args ...string) ([]byte, error)
	// RunInput is Run with data supplied on stdin (crontab -).
	RunInput(input []byte, name string, args ...string) ([]byte, error)
}

// RealSystem implements System against the live host.
type RealSystem struct{}

func (RealSystem) Stat(name string) (os.FileInfo, error)      { return os.Stat(name) }
func (RealSystem) Lstat(name string) (os.FileInfo, error)     { return os.Lstat(name) }
func (RealSystem) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }
func (RealSystem) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }
func (RealSystem) Readlink(name string) (string, error)       { return os.Readlink(name) }

// WalkDir walks the file tree rooted at root.
func (RealSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (RealSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// WriteFile writes atomically: temp file in the target directory, then rename.
// A migration interrupted mid-write must never leave a truncated config.
func (RealSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return writeFileAtomic(name, data, perm)
}

func (RealSystem) Rename(oldpath string, newpath string) error { return os.Rename(oldpath, newpath) }
func (RealSystem) Remove(name string) error                    { return os.Remove(name) }
func (RealSystem) RemoveAll(path string) error                 { return os.RemoveAll(path) }

func (RealSystem) Symlink(oldname string, newname string) error {
	return os.Symlink(oldname, newname)
}

func (RealSystem) Chmod(name string, mode os.FileMode) error { return os.Chmod(name, mode) }

func (RealSystem) Lchown(name string, uid int, gid int) error {
	return os.Lchown(name, uid, gid)
}

// Run executes the named command, blocking until it exits.
func (RealSystem) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// RunInput executes the named command with input on stdin.
func (RealSystem) RunInput(input []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(input)
	return cmd.CombinedOutput()
}
