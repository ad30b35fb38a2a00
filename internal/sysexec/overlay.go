package sysexec

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// overlay tracks the filesystem effects of described mutations so that in
// dry-run mode later reads observe earlier (not yet applied) actions. This is
// what keeps the described action sequence identical to the applied one: step
// logic reads through the shim and never branches on mode.
type overlay struct {
	// renames maps logical new prefixes to old ones, in mutation order.
	renames []renameEntry
	// removed holds logical paths whose subtree was deleted.
	removed []string
	// written maps logical paths to content written in describe mode.
	written map[string][]byte
	// dirs holds logical directories created in describe mode.
	dirs map[string]bool
	// symlinks maps logical link paths to their targets.
	symlinks map[string]string
	// modes holds permission bits described for a logical path, whether by a
	// creation or a later chmod. Apply mode would leave the same bits on disk.
	modes map[string]os.FileMode
}

type renameEntry struct {
	old string
	new string
}

func newOverlay() *overlay {
	return &overlay{
		written:  map[string][]byte{},
		dirs:     map[string]bool{},
		symlinks: map[string]string{},
		modes:    map[string]os.FileMode{},
	}
}

func (o *overlay) noteRename(oldPath string, newPath string) {
	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	// Creations recorded under the old prefix move with it, so their logical
	// paths stay readable after the rename.
	remap := func(path string) (string, bool) {
		if path == oldPath {
			return newPath, true
		}
		if rel, ok := childOf(oldPath, path); ok {
			return filepath.Join(newPath, rel), true
		}
		return path, false
	}
	type moved struct{ from, to string }
	var writes, dirs, links, modes []moved
	for path := range o.written {
		if to, ok := remap(path); ok {
			writes = append(writes, moved{path, to})
		}
	}
	for path := range o.dirs {
		if to, ok := remap(path); ok {
			dirs = append(dirs, moved{path, to})
		}
	}
	for path := range o.symlinks {
		if to, ok := remap(path); ok {
			links = append(links, moved{path, to})
		}
	}
	for path := range o.modes {
		if to, ok := remap(path); ok {
			modes = append(modes, moved{path, to})
		}
	}
	for _, m := range writes {
		o.written[m.to] = o.written[m.from]
		delete(o.written, m.from)
	}
	for _, m := range dirs {
		delete(o.dirs, m.from)
		o.dirs[m.to] = true
	}
	for _, m := range links {
		o.symlinks[m.to] = o.symlinks[m.from]
		delete(o.symlinks, m.from)
	}
	for _, m := range modes {
		o.modes[m.to] = o.modes[m.from]
		delete(o.modes, m.from)
	}
	o.renames = append(o.renames, renameEntry{old: oldPath, new: newPath})
}

func (o *overlay) noteRemove(path string) {
	path = filepath.Clean(path)
	o.removed = append(o.removed, path)
	delete(o.written, path)
	delete(o.dirs, path)
	delete(o.symlinks, path)
	delete(o.modes, path)
}

func (o *overlay) noteWrite(path string, data []byte, perm os.FileMode) {
	path = filepath.Clean(path)
	o.written[path] = data
	o.modes[path] = perm.Perm()
}

func (o *overlay) noteMkdir(path string, perm os.FileMode) {
	path = filepath.Clean(path)
	o.dirs[path] = true
	o.modes[path] = perm.Perm()
}

func (o *overlay) noteSymlink(target string, link string) {
	link = filepath.Clean(link)
	o.symlinks[link] = target
	o.modes[link] = 0o777
}

func (o *overlay) noteChmod(path string, mode os.FileMode) {
	o.modes[filepath.Clean(path)] = mode.Perm()
}

// backing maps a logical path to the real path currently holding its content,
// unwinding described renames newest-first.
func (o *overlay) backing(path string) string {
	path = filepath.Clean(path)
	for i := len(o.renames) - 1; i >= 0; i-- {
		entry := o.renames[i]
		if path == entry.new {
			path = entry.old
			continue
		}
		if rel, ok := childOf(entry.new, path); ok {
			path = filepath.Join(entry.old, rel)
		}
	}
	return path
}

// gone reports whether the logical path was removed or renamed away and not
// re-created since. Creations are checked by the caller first.
func (o *overlay) gone(path string) bool {
	path = filepath.Clean(path)
	for _, removed := range o.removed {
		if path == removed {
			return true
		}
		if _, ok := childOf(removed, path); ok {
			return true
		}
	}
	for _, entry := range o.renames {
		if path == entry.old {
			return true
		}
		if _, ok := childOf(entry.old, path); ok {
			return true
		}
	}
	return false
}

// created reports a creation recorded at the logical path, if any.
func (o *overlay) created(path string) (kind string, ok bool) {
	path = filepath.Clean(path)
	if _, ok := o.symlinks[path]; ok {
		return "symlink", true
	}
	if _, ok := o.written[path]; ok {
		return "file", true
	}
	if o.dirs[path] {
		return "dir", true
	}
	return "", false
}

// childNames lists names created directly under dir in describe mode.
func (o *overlay) childNames(dir string) []string {
	dir = filepath.Clean(dir)
	seen := map[string]bool{}
	collect := func(path string) {
		if rel, ok := childOf(dir, path); ok {
			name := strings.SplitN(rel, string(filepath.Separator), 2)[0]
			seen[name] = true
		}
	}
	for path := range o.written {
		collect(path)
	}
	for path := range o.dirs {
		collect(path)
	}
	for path := range o.symlinks {
		collect(path)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// childOf returns path relative to dir when path is strictly beneath it.
func childOf(dir string, path string) (string, bool) {
	prefix := dir + string(filepath.Separator)
	if strings.HasPrefix(path, prefix) {
		return path[len(prefix):], true
	}
	return "", false
}

// --- overlay-aware reads on Executor ---

// Exists reports whether the logical path exists (Lstat semantics: a symlink
// counts even when dangling).
func (e *Executor) Exists(path string) bool {
	if e.dryRun {
		if _, ok := e.ov.created(path); ok {
			return true
		}
		if e.ov.gone(path) {
			return false
		}
		path = e.ov.backing(path)
	}
	_, err := e.sys.Lstat(path)
	return err == nil
}

// IsDir reports whether the logical path is a directory.
func (e *Executor) IsDir(path string) bool {
	if e.dryRun {
		if kind, ok := e.ov.created(path); ok {
			return kind == "dir"
		}
		if e.ov.gone(path) {
			return false
		}
		path = e.ov.backing(path)
	}
	info, err := e.sys.Stat(path)
	return err == nil && info.IsDir()
}

// IsSymlink reports whether the logical path is a symbolic link.
func (e *Executor) IsSymlink(path string) bool {
	if e.dryRun {
		if kind, ok := e.ov.created(path); ok {
			return kind == "symlink"
		}
		if e.ov.gone(path) {
			return false
		}
		path = e.ov.backing(path)
	}
	info, err := e.sys.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// IsRegular reports whether the logical path is a regular file.
func (e *Executor) IsRegular(path string) bool {
	if e.dryRun {
		if kind, ok := e.ov.created(path); ok {
			return kind == "file"
		}
		if e.ov.gone(path) {
			return false
		}
		path = e.ov.backing(path)
	}
	info, err := e.sys.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile returns the logical path's content.
func (e *Executor) ReadFile(path string) ([]byte, error) {
	if e.dryRun {
		if data, ok := e.ov.written[filepath.Clean(path)]; ok {
			return append([]byte(nil), data...), nil
		}
		if e.ov.gone(path) {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		path = e.ov.backing(path)
	}
	return e.sys.ReadFile(path)
}

// FileMode returns the logical path's permission bits. Bits described by an
// earlier creation or chmod win over whatever is on disk.
func (e *Executor) FileMode(path string) (os.FileMode, error) {
	if e.dryRun {
		if mode, ok := e.ov.modes[filepath.Clean(path)]; ok {
			return mode, nil
		}
		if e.ov.gone(path) {
			return 0, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		path = e.ov.backing(path)
	}
	info, err := e.sys.Lstat(path)
	if err != nil {
		return 0, err
	}
	return info.Mode().Perm(), nil
}

// ReadDirNames lists entry names of the logical directory, merging described
// creations over the backing directory.
func (e *Executor) ReadDirNames(path string) ([]string, error) {
	if !e.dryRun {
		entries, err := e.sys.ReadDir(path)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		return names, nil
	}

	seen := map[string]bool{}
	if !e.ov.gone(path) {
		if entries, err := e.sys.ReadDir(e.ov.backing(path)); err == nil {
			for _, entry := range entries {
				seen[entry.Name()] = true
			}
		}
	}
	for _, name := range e.ov.childNames(path) {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		if !e.ov.gone(filepath.Join(path, name)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// WalkTree walks the logical tree rooted at root. The callback receives
// logical paths; isDir and isRegular describe the entry.
func (e *Executor) WalkTree(root string, fn func(path string, isDir bool, isRegular bool) error) error {
	if !e.IsDir(root) {
		return &fs.PathError{Op: "walk", Path: root, Err: fs.ErrNotExist}
	}
	if err := fn(root, true, false); err != nil {
		return err
	}
	names, err := e.ReadDirNames(root)
	if err != nil {
		return err
	}
	for _, name := range names {
		child := filepath.Join(root, name)
		if e.IsDir(child) {
			if err := e.WalkTree(child, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(child, false, e.IsRegular(child)); err != nil {
			return err
		}
	}
	return nil
}
