package index

import (
	"strings"
	"time"

	"github.com/memstack/memdrive/internal/store"
)

// Entry is one indexed file. Equal names in different directories share
// a B-tree key, so the catalog stores a list of entries per key.
type Entry struct {
	Name       string    `json:"name"`
	FullPath   string    `json:"full_path"`
	SizeKB     int       `json:"size_kb"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	Extension  string    `json:"extension"`
}

// Key returns the lowercase name the entry is indexed under.
func (e *Entry) Key() string {
	return strings.ToLower(e.Name)
}

// SizeKB converts a content payload to its indexed size. Sizes round up
// to whole kilobytes with a 1 KB floor, so empty content is 1 KB.
func SizeKB(content string) int {
	kb := (len(content) + 1023) / 1024
	if kb < 1 {
		kb = 1
	}
	return kb
}

// NewEntry builds an entry for a file at a canonical path.
func NewEntry(name, fullPath, content string, created, modified time.Time) *Entry {
	return &Entry{
		Name:       name,
		FullPath:   store.Normalize(fullPath),
		SizeKB:     SizeKB(content),
		CreatedAt:  created,
		ModifiedAt: modified,
		Extension:  store.ExtensionOf(name),
	}
}
