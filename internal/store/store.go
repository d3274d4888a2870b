package store

import (
	"fmt"
	"strings"
)

// Store is the chain of storage units. The chain is a singly-linked list
// in registration order; the first unit is the boot default.
type Store struct {
	head  *StorageUnit
	count int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// AddUnit registers a unit at the tail of the chain.
func (s *Store) AddUnit(name string) (*StorageUnit, error) {
	unit, err := NewStorageUnit(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.Unit(unit.Name); err == nil {
		return nil, fmt.Errorf("%w: unit %q", ErrNameConflict, unit.Name)
	}
	if s.head == nil {
		s.head = unit
	} else {
		tail := s.head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = unit
	}
	s.count++
	return unit, nil
}

// Attach links an already-built unit at the tail of the chain.
// Used by snapshot restore, where trees arrive fully formed.
func (s *Store) Attach(unit *StorageUnit) error {
	if _, err := s.Unit(unit.Name); err == nil {
		return fmt.Errorf("%w: unit %q", ErrNameConflict, unit.Name)
	}
	unit.next = nil
	if s.head == nil {
		s.head = unit
	} else {
		tail := s.head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = unit
	}
	s.count++
	return nil
}

// Unit finds a unit by name, case-insensitively. Bare letters match
// their canonical form.
func (s *Store) Unit(name string) (*StorageUnit, error) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasSuffix(needle, ":") {
		needle += ":"
	}
	for u := s.head; u != nil; u = u.next {
		if u.Name == needle {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// Units returns the chain in registration order.
func (s *Store) Units() []*StorageUnit {
	out := make([]*StorageUnit, 0, s.count)
	for u := s.head; u != nil; u = u.next {
		out = append(out, u)
	}
	return out
}

// First returns the head of the chain, or nil for an empty store.
func (s *Store) First() *StorageUnit {
	return s.head
}

// Len returns the number of units.
func (s *Store) Len() int {
	return s.count
}
