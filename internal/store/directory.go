package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Directory is an interior node of a unit's tree. Subdirectories keep
// insertion order; files live in a BST keyed by lowercase name. Sibling
// names are unique case-insensitively across both namespaces.
type Directory struct {
	Name       string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Parent     *Directory
	Subdirs    []*Directory
	files      fileTree
}

// NewDirectory creates a directory with both timestamps set to now.
// Names are validated at attach time, not here; unit roots carry the
// unit's own name, which would fail child validation.
func NewDirectory(name string) *Directory {
	now := time.Now()
	return &Directory{
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Touch refreshes the modification time.
func (d *Directory) Touch() {
	d.ModifiedAt = time.Now()
}

// IsRoot reports whether the directory is a unit root.
func (d *Directory) IsRoot() bool {
	return d.Parent == nil
}

// IsEmpty reports whether the directory has no children of either kind.
func (d *Directory) IsEmpty() bool {
	return len(d.Subdirs) == 0 && d.files.size == 0
}

// FindSubdir returns the subdirectory with the given name, matched
// case-insensitively, or nil.
func (d *Directory) FindSubdir(name string) *Directory {
	for _, sub := range d.Subdirs {
		if strings.EqualFold(sub.Name, name) {
			return sub
		}
	}
	return nil
}

// FindFile returns the file with the given name or nil.
func (d *Directory) FindFile(name string) *File {
	return d.files.find(strings.ToLower(name))
}

// LookupChild returns whichever child uses the name, in either namespace.
func (d *Directory) LookupChild(name string) (*Directory, *File) {
	return d.FindSubdir(name), d.FindFile(name)
}

// AddSubdir attaches a child directory. The name must be valid and free
// in both namespaces.
func (d *Directory) AddSubdir(child *Directory) error {
	if err := ValidateDirectoryName(child.Name); err != nil {
		return err
	}
	if sub, f := d.LookupChild(child.Name); sub != nil || f != nil {
		return fmt.Errorf("%w: %q", ErrNameConflict, child.Name)
	}
	child.Parent = d
	d.Subdirs = append(d.Subdirs, child)
	d.Touch()
	return nil
}

// AddFile inserts a file into the BST. A directory holding the name
// blocks the insert; a file holding it is a duplicate.
func (d *Directory) AddFile(f *File) error {
	if err := ValidateFileName(f.Name); err != nil {
		return err
	}
	if sub := d.FindSubdir(f.Name); sub != nil {
		return fmt.Errorf("%w: %q", ErrNameConflict, f.Name)
	}
	if err := d.files.insert(f); err != nil {
		return fmt.Errorf("%w: %q", err, f.Name)
	}
	d.Touch()
	return nil
}

// RemoveSubdir detaches and returns the named child directory.
func (d *Directory) RemoveSubdir(name string) (*Directory, error) {
	for i, sub := range d.Subdirs {
		if strings.EqualFold(sub.Name, name) {
			d.Subdirs = append(d.Subdirs[:i], d.Subdirs[i+1:]...)
			sub.Parent = nil
			d.Touch()
			return sub, nil
		}
	}
	return nil, fmt.Errorf("%w: directory %q", ErrNotFound, name)
}

// RemoveFile deletes and returns the named file.
func (d *Directory) RemoveFile(name string) (*File, error) {
	f := d.files.remove(strings.ToLower(name))
	if f == nil {
		return nil, fmt.Errorf("%w: file %q", ErrNotFound, name)
	}
	d.Touch()
	return f, nil
}

// Files returns the directory's files in the requested traversal order.
func (d *Directory) Files(order TraversalOrder) []*File {
	return d.files.traverse(order)
}

// FileCount returns the number of files directly in the directory.
func (d *Directory) FileCount() int {
	return d.files.size
}

// ListElements returns subdirectories sorted case-insensitively by name,
// followed by files in in-order traversal. The child slice itself keeps
// insertion order; sorting is presentation only.
func (d *Directory) ListElements() ([]*Directory, []*File) {
	dirs := make([]*Directory, len(d.Subdirs))
	copy(dirs, d.Subdirs)
	sort.Slice(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].Name) < strings.ToLower(dirs[j].Name)
	})
	return dirs, d.files.traverse(InOrder)
}

// Walk visits the directory and every descendant in preorder.
func (d *Directory) Walk(fn func(*Directory)) {
	fn(d)
	for _, sub := range d.Subdirs {
		sub.Walk(fn)
	}
}

// WalkPost visits every descendant and then the directory itself.
func (d *Directory) WalkPost(fn func(*Directory)) {
	for _, sub := range d.Subdirs {
		sub.WalkPost(fn)
	}
	fn(d)
}

// Contains reports whether other is d or lives anywhere under d.
func (d *Directory) Contains(other *Directory) bool {
	for n := other; n != nil; n = n.Parent {
		if n == d {
			return true
		}
	}
	return false
}
