// Package stack provides a singly-linked LIFO stack.
//
// The linked representation keeps push and pop O(1) without reallocation
// and preserves insertion order for snapshot/restore round-trips.
package stack

type node[T any] struct {
	value T
	next  *node[T]
}

// Stack is a singly-linked last-in-first-out stack.
// The zero value is an empty stack ready to use.
type Stack[T any] struct {
	top  *node[T]
	size int
}

// New creates an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places a value on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.top = &node[T]{value: v, next: s.top}
	s.size++
}

// Pop removes and returns the top value.
// The second return is false when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	if s.top == nil {
		var zero T
		return zero, false
	}
	v := s.top.value
	s.top = s.top.next
	s.size--
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if s.top == nil {
		var zero T
		return zero, false
	}
	return s.top.value, true
}

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int {
	return s.size
}

// Clear removes every value.
func (s *Stack[T]) Clear() {
	s.top = nil
	s.size = 0
}

// Snapshot returns the values top-first without modifying the stack.
func (s *Stack[T]) Snapshot() []T {
	out := make([]T, 0, s.size)
	for n := s.top; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Restore replaces the stack contents from a top-first slice, so that
// Restore(s.Snapshot()) reproduces the original order.
func (s *Stack[T]) Restore(values []T) {
	s.Clear()
	for i := len(values) - 1; i >= 0; i-- {
		s.Push(values[i])
	}
}
