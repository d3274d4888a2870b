package store

import "errors"

// Sentinel errors returned by store operations. Callers match them with
// errors.Is; operations that fail leave the tree untouched.
var (
	// ErrNameConflict is returned when a sibling already uses the name,
	// in either namespace (directory or file).
	ErrNameConflict = errors.New("store: name already in use")

	// ErrDuplicateName is returned when a file with the same lowercase
	// name already exists in the directory's tree.
	ErrDuplicateName = errors.New("store: duplicate file name")

	// ErrNotFound is returned when a path component, directory, or file
	// does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrUnknownUnit is returned when a storage unit letter is not
	// registered.
	ErrUnknownUnit = errors.New("store: unknown storage unit")

	// ErrInvalidName is returned when a name is empty, contains a
	// forbidden character, or a file name lacks an extension.
	ErrInvalidName = errors.New("store: invalid name")

	// ErrRootViolation is returned on attempts to remove or rename a
	// unit root.
	ErrRootViolation = errors.New("store: unit root cannot be removed")

	// ErrNotEmpty is returned when removing a non-empty directory
	// without the recursive flag.
	ErrNotEmpty = errors.New("store: directory not empty")
)
