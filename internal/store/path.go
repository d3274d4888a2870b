package store

import (
	"fmt"
	"strings"
)

// Normalize converts backslashes to slashes and trims surrounding blanks.
// Both separators are accepted on input; canonical paths use "/".
func Normalize(path string) string {
	return strings.TrimSpace(strings.ReplaceAll(path, `\`, "/"))
}

// SplitUnit detects a unit prefix (a colon in the second byte) and
// returns it apart from the remainder.
func SplitUnit(path string) (unit, rest string, ok bool) {
	if len(path) >= 2 && path[1] == ':' {
		return path[:2], path[2:], true
	}
	return "", path, false
}

// Resolve walks a path starting from the given position and returns the
// target unit and directory. A unit prefix selects that unit and resets
// to its root; a leading slash resets to the current unit's root; "."
// and empty components are skipped; ".." moves to the parent and is a
// no-op at the root. Every other component is a case-insensitive
// directory lookup, so files never match.
func Resolve(s *Store, unit *StorageUnit, dir *Directory, path string) (*StorageUnit, *Directory, error) {
	p := Normalize(path)

	if name, rest, ok := SplitUnit(p); ok {
		u, err := s.Unit(name)
		if err != nil {
			return nil, nil, err
		}
		unit, dir = u, u.Root
		p = rest
	}
	if unit == nil || dir == nil {
		return nil, nil, fmt.Errorf("%w: no current unit", ErrUnknownUnit)
	}
	if strings.HasPrefix(p, "/") {
		dir = unit.Root
	}

	for _, comp := range strings.Split(p, "/") {
		switch comp {
		case "", ".":
			continue
		case "..":
			if dir.Parent != nil {
				dir = dir.Parent
			}
		default:
			next := dir.FindSubdir(comp)
			if next == nil {
				return nil, nil, fmt.Errorf("%w: directory %q", ErrNotFound, comp)
			}
			dir = next
		}
	}
	return unit, dir, nil
}

// Absolute returns the canonical unit-qualified path of a directory.
// A unit root is its bare name ("C:"), deeper directories join with "/".
func Absolute(d *Directory) string {
	if d.Parent == nil {
		return d.Name
	}
	var parts []string
	root := d
	for root.Parent != nil {
		parts = append(parts, root.Name)
		root = root.Parent
	}
	var b strings.Builder
	b.WriteString(root.Name)
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// FilePath returns the canonical path of a file inside a directory.
func FilePath(d *Directory, name string) string {
	return Absolute(d) + "/" + name
}

// Split separates a path into the parent portion and the final
// component. An empty parent means the caller's current directory.
func Split(path string) (parent, leaf string) {
	p := Normalize(path)
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	unitName, rest, hasUnit := SplitUnit(p)
	i := strings.LastIndex(rest, "/")
	if i < 0 {
		if hasUnit {
			return unitName, rest
		}
		return "", rest
	}
	parent = rest[:i]
	if parent == "" {
		parent = "/"
	}
	return unitName + parent, rest[i+1:]
}
