// Package index maintains the global file catalog.
//
// The catalog is a B-tree keyed by lowercase file name; each key holds
// the list of entries sharing that name across directories and units.
// Exact lookups descend the tree; fragment, size, fuzzy, and glob
// queries walk every node.
//
// Keys are never deleted from the tree. Removals, renames, and prefix
// drops filter the entry list and rebuild, which keeps the structure
// convergent: rebuilding an already-consistent catalog changes nothing.
package index
