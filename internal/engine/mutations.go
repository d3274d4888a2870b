package engine

import (
	"fmt"

	"github.com/memstack/memdrive/internal/store"
)

// CreateDirectory makes a directory at path and returns its canonical
// location. The parent must exist; the leaf name must be valid and free.
func (e *Engine) CreateDirectory(s *Session, path string) (string, error) {
	parentPath, leaf := store.Split(path)
	if err := store.ValidateDirectoryName(leaf); err != nil {
		return "", e.fail("mkdir", err)
	}
	_, parent, err := store.Resolve(e.store, s.Unit, s.Dir, parentPath)
	if err != nil {
		return "", e.fail("mkdir", err)
	}
	child := store.NewDirectory(leaf)
	if err := parent.AddSubdir(child); err != nil {
		return "", e.fail("mkdir", err)
	}
	abs := store.Absolute(child)
	e.record("mkdir %s", abs)
	return abs, nil
}

// CreateFile makes a file at path with the given content, indexes it,
// and returns it with its canonical location.
func (e *Engine) CreateFile(s *Session, path, content string) (*store.File, string, error) {
	parentPath, leaf := store.Split(path)
	if err := store.ValidateFileName(leaf); err != nil {
		return nil, "", e.fail("touch", err)
	}
	_, parent, err := store.Resolve(e.store, s.Unit, s.Dir, parentPath)
	if err != nil {
		return nil, "", e.fail("touch", err)
	}
	f := store.NewFile(leaf, content)
	if err := parent.AddFile(f); err != nil {
		return nil, "", e.fail("touch", err)
	}
	abs := store.FilePath(parent, f.Name)
	e.catalog.Insert(f.Name, abs, f.Content, f.CreatedAt, f.ModifiedAt)
	e.record("touch %s", abs)
	return f, abs, nil
}

// WriteFile replaces a file's content and refreshes its catalog size.
func (e *Engine) WriteFile(s *Session, path, content string) (*store.File, string, error) {
	parent, f, err := e.resolveFile(s, path)
	if err != nil {
		return nil, "", e.fail("write", err)
	}
	f.Write(content)
	abs := store.FilePath(parent, f.Name)
	e.catalog.Update(abs, content, f.ModifiedAt)
	e.record("write %s", abs)
	return f, abs, nil
}

// RemoveFile deletes a file and drops its catalog entry.
func (e *Engine) RemoveFile(s *Session, path string) (string, error) {
	parent, f, err := e.resolveFile(s, path)
	if err != nil {
		return "", e.fail("rm", err)
	}
	abs := store.FilePath(parent, f.Name)
	if _, err := parent.RemoveFile(f.Name); err != nil {
		return "", e.fail("rm", err)
	}
	e.catalog.RemoveExact(abs)
	e.record("rm %s", abs)
	return abs, nil
}

// RemoveDirectory unlinks the directory at path. Without recursive the
// directory must be empty; with it the whole subtree goes, and the
// catalog loses exactly the subtree's entries. Sessions positioned
// inside move to the unit root. Returns the removed path and how many
// catalog entries went with it.
func (e *Engine) RemoveDirectory(s *Session, path string, recursive bool) (string, int, error) {
	unit, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return "", 0, e.fail("rmdir", err)
	}
	if dir.IsRoot() {
		return "", 0, e.fail("rmdir", fmt.Errorf("%w: %s", store.ErrRootViolation, dir.Name))
	}
	if !recursive && !dir.IsEmpty() {
		return "", 0, e.fail("rmdir", fmt.Errorf("%w: %s", store.ErrNotEmpty, store.Absolute(dir)))
	}

	abs := store.Absolute(dir)
	if _, err := dir.Parent.RemoveSubdir(dir.Name); err != nil {
		return "", 0, e.fail("rmdir", err)
	}
	removed := e.catalog.RemovePrefix(abs)
	e.relocateSessions(dir, unit)
	e.record("rmdir %s", abs)
	return abs, removed, nil
}

// Rename gives the directory or file at path a new name. The target is
// looked up in both namespaces; the new name must be valid for the
// target's kind and free among the siblings. File renames keep both
// timestamps; directory renames touch the directory and reindex every
// file underneath at its new path.
func (e *Engine) Rename(s *Session, path, newName string) (string, error) {
	parentPath, leaf := store.Split(path)
	_, parent, err := store.Resolve(e.store, s.Unit, s.Dir, parentPath)
	if err != nil {
		return "", e.fail("rename", err)
	}
	dir, file := parent.LookupChild(leaf)
	switch {
	case dir != nil:
		return e.renameDirectory(parent, dir, newName)
	case file != nil:
		return e.renameFile(parent, file, newName)
	default:
		return "", e.fail("rename", fmt.Errorf("%w: %q", store.ErrNotFound, leaf))
	}
}

func (e *Engine) renameDirectory(parent, dir *store.Directory, newName string) (string, error) {
	if err := store.ValidateDirectoryName(newName); err != nil {
		return "", e.fail("rename", err)
	}
	if subHit, fileHit := parent.LookupChild(newName); fileHit != nil || (subHit != nil && subHit != dir) {
		return "", e.fail("rename", fmt.Errorf("%w: %q", store.ErrNameConflict, newName))
	}

	oldAbs := store.Absolute(dir)
	dir.Name = newName
	dir.Touch()

	e.catalog.RemovePrefix(oldAbs)
	dir.Walk(func(d *store.Directory) {
		for _, f := range d.Files(store.PreOrder) {
			e.catalog.InsertEntry(e.entryFor(d, f))
		}
	})

	newAbs := store.Absolute(dir)
	e.record("rename %s -> %s", oldAbs, newAbs)
	return newAbs, nil
}

func (e *Engine) renameFile(parent *store.Directory, f *store.File, newName string) (string, error) {
	if err := store.ValidateFileName(newName); err != nil {
		return "", e.fail("rename", err)
	}
	if subHit, fileHit := parent.LookupChild(newName); subHit != nil || (fileHit != nil && fileHit != f) {
		return "", e.fail("rename", fmt.Errorf("%w: %q", store.ErrNameConflict, newName))
	}

	oldAbs := store.FilePath(parent, f.Name)
	if _, err := parent.RemoveFile(f.Name); err != nil {
		return "", e.fail("rename", err)
	}
	f.Rename(newName)
	if err := parent.AddFile(f); err != nil {
		// Conflicts were pre-checked; reaching here is a programming error.
		return "", e.fail("rename", err)
	}

	e.catalog.Rename(oldAbs, newName)
	newAbs := store.FilePath(parent, f.Name)
	e.record("rename %s -> %s", oldAbs, newAbs)
	return newAbs, nil
}

// resolveFile resolves a path down to its parent directory and file.
func (e *Engine) resolveFile(s *Session, path string) (*store.Directory, *store.File, error) {
	parentPath, leaf := store.Split(path)
	_, parent, err := store.Resolve(e.store, s.Unit, s.Dir, parentPath)
	if err != nil {
		return nil, nil, err
	}
	f := parent.FindFile(leaf)
	if f == nil {
		return nil, nil, fmt.Errorf("%w: file %q", store.ErrNotFound, leaf)
	}
	return parent, f, nil
}
