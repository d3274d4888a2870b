package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"github.com/memstack/memdrive/internal/store"
)

// Index is the global catalog of files across every storage unit,
// backed by a B-tree keyed on lowercase file name. Removals and renames
// filter the entry list and rebuild the tree; the simplification trades
// rebalancing code for a rebuild that is idempotent by construction.
type Index struct {
	tree   *btree
	degree int
	count  int
}

// New creates an empty catalog. Degrees below 2 are raised to 2.
func New(degree int) *Index {
	if degree < 2 {
		degree = 2
	}
	return &Index{
		tree:   newBtree(degree),
		degree: degree,
	}
}

// Degree returns the minimum degree in use.
func (ix *Index) Degree() int {
	return ix.degree
}

// Len returns the total number of entries.
func (ix *Index) Len() int {
	return ix.count
}

// Height returns the B-tree height.
func (ix *Index) Height() int {
	return ix.tree.height()
}

// Keys returns the number of distinct lowercase names.
func (ix *Index) Keys() int {
	return ix.tree.keyCount()
}

// Insert indexes a file by its name, canonical path, and content.
func (ix *Index) Insert(name, fullPath, content string, created, modified time.Time) {
	ix.InsertEntry(NewEntry(name, fullPath, content, created, modified))
}

// InsertEntry indexes a prebuilt entry, preserving its size and
// timestamps. Rebuilds and renames come through here.
func (ix *Index) InsertEntry(e *Entry) {
	ix.tree.insert(e)
	ix.count++
}

// SearchExact returns the entries indexed under the exact name,
// case-insensitively, or nil when the name is absent.
func (ix *Index) SearchExact(name string) []*Entry {
	n, i := ix.tree.search(ix.tree.root, strings.ToLower(name))
	if n == nil {
		return nil
	}
	out := make([]*Entry, len(n.values[i]))
	copy(out, n.values[i])
	return out
}

// SearchFragment returns entries whose name contains the fragment,
// sorted case-insensitively by (name, path). The walk visits every
// node; fragments cannot use the key ordering.
func (ix *Index) SearchFragment(fragment string) []*Entry {
	var out []*Entry
	ix.tree.scan(func(key string, entries []*Entry) {
		if containsFragment(key, fragment) {
			out = append(out, entries...)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ak, bk := a.Key(), b.Key(); ak != bk {
			return ak < bk
		}
		return strings.ToLower(a.FullPath) < strings.ToLower(b.FullPath)
	})
	return out
}

// SearchRange returns entries with minKB <= size <= maxKB, sorted by
// (size, path).
func (ix *Index) SearchRange(minKB, maxKB int) []*Entry {
	out := lo.Filter(ix.All(), func(e *Entry, _ int) bool {
		return e.SizeKB >= minKB && e.SizeKB <= maxKB
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SizeKB != b.SizeKB {
			return a.SizeKB < b.SizeKB
		}
		return strings.ToLower(a.FullPath) < strings.ToLower(b.FullPath)
	})
	return out
}

// SearchCombined prefilters by name fragment, then by size range,
// sorted case-insensitively by (name, size, path).
func (ix *Index) SearchCombined(fragment string, minKB, maxKB int) []*Entry {
	out := lo.Filter(ix.SearchFragment(fragment), func(e *Entry, _ int) bool {
		return e.SizeKB >= minKB && e.SizeKB <= maxKB
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ak, bk := a.Key(), b.Key(); ak != bk {
			return ak < bk
		}
		if a.SizeKB != b.SizeKB {
			return a.SizeKB < b.SizeKB
		}
		return strings.ToLower(a.FullPath) < strings.ToLower(b.FullPath)
	})
	return out
}

// SearchFuzzy rank-matches the query against every distinct name and
// returns the best-ranked entries, at most limit (0 means no limit).
func (ix *Index) SearchFuzzy(query string, limit int) []*Entry {
	var keys []string
	byKey := make(map[string][]*Entry)
	ix.tree.scan(func(key string, entries []*Entry) {
		keys = append(keys, key)
		byKey[key] = entries
	})

	ranks := fuzzy.RankFindNormalizedFold(query, keys)
	sort.Sort(ranks)

	var out []*Entry
	for _, r := range ranks {
		for _, e := range byKey[r.Target] {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// SearchGlob matches a doublestar pattern against canonical paths
// ("C:/docs/**/*.txt"), sorted by path.
func (ix *Index) SearchGlob(pattern string) ([]*Entry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("index: invalid glob pattern %q", pattern)
	}
	out := lo.Filter(ix.All(), func(e *Entry, _ int) bool {
		ok, _ := doublestar.Match(pattern, e.FullPath)
		return ok
	})
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].FullPath) < strings.ToLower(out[j].FullPath)
	})
	return out, nil
}

// All returns every entry in key order.
func (ix *Index) All() []*Entry {
	out := make([]*Entry, 0, ix.count)
	ix.tree.inOrder(func(_ string, entries []*Entry) {
		out = append(out, entries...)
	})
	return out
}

// Clear empties the catalog.
func (ix *Index) Clear() {
	ix.tree = newBtree(ix.degree)
	ix.count = 0
}

// rebuild replaces the tree with one built from the given entries.
func (ix *Index) rebuild(entries []*Entry) {
	ix.Clear()
	for _, e := range entries {
		ix.InsertEntry(e)
	}
}

// RemoveExact drops every entry whose canonical path equals the
// argument and returns how many were dropped. Missing paths are a
// no-op, which makes delete synchronization idempotent.
func (ix *Index) RemoveExact(fullPath string) int {
	target := store.Normalize(fullPath)
	all := ix.All()
	keep := lo.Filter(all, func(e *Entry, _ int) bool {
		return e.FullPath != target
	})
	removed := len(all) - len(keep)
	if removed > 0 {
		ix.rebuild(keep)
	}
	return removed
}

// RemovePrefix drops every entry under the canonical directory prefix.
// The match is separator-aware, so removing "C:/docs" leaves
// "C:/docs2/x.txt" alone.
func (ix *Index) RemovePrefix(prefix string) int {
	target := store.Normalize(prefix)
	all := ix.All()
	keep := lo.Filter(all, func(e *Entry, _ int) bool {
		return e.FullPath != target && !strings.HasPrefix(e.FullPath, target+"/")
	})
	removed := len(all) - len(keep)
	if removed > 0 {
		ix.rebuild(keep)
	}
	return removed
}

// Rename rewrites the entries at a canonical path with a new final
// component, preserving size and timestamps, and returns how many
// entries changed.
func (ix *Index) Rename(oldPath, newName string) int {
	target := store.Normalize(oldPath)
	all := ix.All()
	changed := 0
	for _, e := range all {
		if e.FullPath != target {
			continue
		}
		e.Name = newName
		e.Extension = store.ExtensionOf(newName)
		if i := strings.LastIndex(e.FullPath, "/"); i >= 0 {
			e.FullPath = e.FullPath[:i+1] + newName
		} else {
			e.FullPath = newName
		}
		changed++
	}
	if changed > 0 {
		ix.rebuild(all)
	}
	return changed
}

// Update resizes the entries at a canonical path after a content write,
// preserving creation time. The key does not change, so no rebuild is
// needed.
func (ix *Index) Update(fullPath, content string, modified time.Time) int {
	target := store.Normalize(fullPath)
	changed := 0
	ix.tree.scan(func(_ string, entries []*Entry) {
		for _, e := range entries {
			if e.FullPath == target {
				e.SizeKB = SizeKB(content)
				e.ModifiedAt = modified
				changed++
			}
		}
	})
	return changed
}

// Serialize dumps every entry in key order for persistence. Tree shape
// is not persisted; deserialization replays inserts.
func (ix *Index) Serialize() []*Entry {
	return ix.All()
}

// Deserialize builds a catalog from a serialized entry list.
func Deserialize(entries []*Entry, degree int) *Index {
	ix := New(degree)
	for _, e := range entries {
		ix.InsertEntry(e)
	}
	return ix
}
