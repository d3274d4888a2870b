// Package store models the in-memory drive hierarchy.
//
// The model is built from three linked structures:
//
//   - StorageUnit: a drive letter owning one tree, chained in a singly
//     linked list in registration order
//   - Directory: an n-ary node with parent back-reference and
//     insertion-ordered children
//   - File: a leaf held in its directory's BST, keyed by lowercase name
//
// Sibling names are unique case-insensitively across both namespaces: a
// file blocks a same-named directory and vice versa.
//
// Path resolution accepts both separators, unit prefixes ("D:"), root
// markers, "." and "..", and matches directories case-insensitively.
// Canonical paths are unit-qualified ("C:/docs/notes.txt").
//
// The package performs no I/O and no locking; callers serialize access.
package store
