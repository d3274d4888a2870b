// Package snapshot persists and restores whole engine states.
//
// A Document captures everything observable: units with their trees,
// file contents and timestamps, both journals, the default session's
// position and the serialized catalog. Capture then Apply then Capture
// yields an identical document, BST shapes included, because file dumps
// are preorder.
//
// The Manager stores encoded documents through an afero filesystem with
// optional zstd compression and a checksum sidecar per snapshot file.
package snapshot
