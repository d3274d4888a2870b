package store

import (
	"fmt"
	"strings"
)

// StorageUnit is a drive letter owning one directory tree. Units form a
// singly-linked chain in registration order; the root directory carries
// the unit's canonical name (for example "C:").
type StorageUnit struct {
	Name string
	Root *Directory
	next *StorageUnit
}

// NewStorageUnit creates a unit from a letter ("c", "C:", "d:").
func NewStorageUnit(name string) (*StorageUnit, error) {
	canonical, err := CanonicalUnitName(name)
	if err != nil {
		return nil, err
	}
	return &StorageUnit{
		Name: canonical,
		Root: NewDirectory(canonical),
	}, nil
}

// Next returns the following unit in the chain, or nil at the tail.
func (u *StorageUnit) Next() *StorageUnit {
	return u.next
}

// CanonicalUnitName normalizes a unit name to the "X:" form.
func CanonicalUnitName(name string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	trimmed = strings.TrimSuffix(trimmed, ":")
	if len(trimmed) != 1 || trimmed[0] < 'A' || trimmed[0] > 'Z' {
		return "", fmt.Errorf("%w: unit %q must be a single letter", ErrInvalidName, name)
	}
	return trimmed + ":", nil
}
