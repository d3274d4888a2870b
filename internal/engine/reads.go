package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/store"
)

// StatInfo describes a directory or file for presentation.
type StatInfo struct {
	IsDir      bool
	Name       string
	Path       string
	SizeKB     int
	Extension  string
	Content    string
	Subdirs    int
	Files      int
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// UnitInfo summarizes one storage unit.
type UnitInfo struct {
	Name    string
	Dirs    int
	Files   int
	Current bool
}

// ReadFile returns the file at path with its canonical location.
func (e *Engine) ReadFile(s *Session, path string) (*store.File, string, error) {
	parent, f, err := e.resolveFile(s, path)
	if err != nil {
		return nil, "", e.fail("read", err)
	}
	abs := store.FilePath(parent, f.Name)
	e.record("read %s", abs)
	return f, abs, nil
}

// ListElements returns the children of the directory at path, an empty
// path meaning the session's current directory. Subdirectories come
// sorted by name, files in BST in-order.
func (e *Engine) ListElements(s *Session, path string) ([]*store.Directory, []*store.File, error) {
	_, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return nil, nil, e.fail("list", err)
	}
	dirs, files := dir.ListElements()
	e.record("list %s", store.Absolute(dir))
	return dirs, files, nil
}

// Tree renders the subtree at path with two-space indentation.
// Directories carry a trailing slash; files list in-order below their
// directory's subdirectories.
func (e *Engine) Tree(s *Session, path string) (string, error) {
	_, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return "", e.fail("tree", err)
	}

	var b strings.Builder
	b.WriteString(store.Absolute(dir))
	b.WriteByte('\n')
	renderTree(&b, dir, 1)
	e.record("tree %s", store.Absolute(dir))
	return b.String(), nil
}

func renderTree(b *strings.Builder, dir *store.Directory, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sub := range dir.Subdirs {
		b.WriteString(indent)
		b.WriteString(sub.Name)
		b.WriteString("/\n")
		renderTree(b, sub, depth+1)
	}
	for _, f := range dir.Files(store.InOrder) {
		b.WriteString(indent)
		b.WriteString(f.Name)
		b.WriteByte('\n')
	}
}

// SubtreePaths lists every path under the directory at path in
// postorder: each directory's files first, then the directory itself,
// children before parents.
func (e *Engine) SubtreePaths(s *Session, path string) ([]string, error) {
	_, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return nil, e.fail("paths", err)
	}

	var out []string
	dir.WalkPost(func(d *store.Directory) {
		for _, f := range d.Files(store.InOrder) {
			out = append(out, store.FilePath(d, f.Name))
		}
		out = append(out, store.Absolute(d))
	})
	e.record("paths %s", store.Absolute(dir))
	return out, nil
}

// FindDirectory scans the session's unit in preorder for the first
// directory matching name case-insensitively.
func (e *Engine) FindDirectory(s *Session, name string) (*store.Directory, error) {
	var found *store.Directory
	s.Unit.Root.Walk(func(d *store.Directory) {
		if found == nil && !d.IsRoot() && strings.EqualFold(d.Name, name) {
			found = d
		}
	})
	if found == nil {
		return nil, e.fail("find", fmt.Errorf("%w: directory %q", store.ErrNotFound, name))
	}
	e.record("find %s", store.Absolute(found))
	return found, nil
}

// Stat describes the file or directory at path, files taking priority
// when the final component could be either.
func (e *Engine) Stat(s *Session, path string) (*StatInfo, error) {
	if parent, f, err := e.resolveFile(s, path); err == nil {
		abs := store.FilePath(parent, f.Name)
		e.record("stat %s", abs)
		return &StatInfo{
			Name:       f.Name,
			Path:       abs,
			SizeKB:     index.SizeKB(f.Content),
			Extension:  f.Extension,
			Content:    f.Content,
			CreatedAt:  f.CreatedAt,
			ModifiedAt: f.ModifiedAt,
		}, nil
	}

	_, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return nil, e.fail("stat", err)
	}
	abs := store.Absolute(dir)
	e.record("stat %s", abs)
	return &StatInfo{
		IsDir:      true,
		Name:       dir.Name,
		Path:       abs,
		Subdirs:    len(dir.Subdirs),
		Files:      dir.FileCount(),
		CreatedAt:  dir.CreatedAt,
		ModifiedAt: dir.ModifiedAt,
	}, nil
}

// Units summarizes every unit, marking the session's current one.
func (e *Engine) Units(s *Session) []UnitInfo {
	units := e.store.Units()
	out := make([]UnitInfo, 0, len(units))
	for _, u := range units {
		info := UnitInfo{Name: u.Name, Current: u == s.Unit}
		u.Root.Walk(func(d *store.Directory) {
			if !d.IsRoot() {
				info.Dirs++
			}
			info.Files += d.FileCount()
		})
		out = append(out, info)
	}
	return out
}
