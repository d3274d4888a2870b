package store

import (
	"strings"
	"time"
)

// File is a leaf in the hierarchy: a named text payload with timestamps.
type File struct {
	Name       string
	Extension  string
	Content    string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewFile creates a file with both timestamps set to now.
func NewFile(name, content string) *File {
	now := time.Now()
	return &File{
		Name:       name,
		Extension:  ExtensionOf(name),
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Key returns the lowercase name used to order files inside a directory.
func (f *File) Key() string {
	return strings.ToLower(f.Name)
}

// Write replaces the content and refreshes the modification time.
func (f *File) Write(content string) {
	f.Content = content
	f.ModifiedAt = time.Now()
}

// Rename changes the name and recomputes the extension.
// Timestamps are left untouched.
func (f *File) Rename(name string) {
	f.Name = name
	f.Extension = ExtensionOf(name)
}
