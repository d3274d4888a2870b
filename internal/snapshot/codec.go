package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/shared/id"
	"github.com/memstack/memdrive/internal/store"
)

// ErrPersistence wraps every save, restore and decode failure.
var ErrPersistence = errors.New("snapshot: persistence failure")

// Document is the serialized form of an engine's whole state.
type Document struct {
	ID          string      `json:"id"`
	TakenAt     time.Time   `json:"taken_at"`
	CurrentUnit string      `json:"current_unit"`
	CurrentPath string      `json:"current_path"`
	Operations  []string    `json:"operations"`
	Errors      []string    `json:"errors"`
	Units       []UnitDoc   `json:"units"`
	Catalog     *CatalogDoc `json:"catalog,omitempty"`
}

// UnitDoc is one storage unit with its full tree.
type UnitDoc struct {
	Name string       `json:"name"`
	Root DirectoryDoc `json:"root"`
}

// DirectoryDoc nests subdirectories in insertion order. Files carry the
// preorder dump of the directory's tree, so re-inserting them in
// document order reproduces the exact shape.
type DirectoryDoc struct {
	Name       string         `json:"name"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt time.Time      `json:"modified_at"`
	Subdirs    []DirectoryDoc `json:"subdirs,omitempty"`
	Files      []FileDoc      `json:"files,omitempty"`
}

// FileDoc holds one file; the extension is derived from the name on load.
type FileDoc struct {
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// CatalogDoc carries the serialized index so a restore skips the rebuild.
type CatalogDoc struct {
	Degree  int            `json:"degree"`
	Entries []*index.Entry `json:"entries"`
}

// Capture builds a document from the engine's live state without
// mutating it. The default session provides the saved position.
func Capture(e *engine.Engine) *Document {
	s := e.DefaultSession()
	doc := &Document{
		ID:          id.NewSnapshotID().String(),
		TakenAt:     time.Now().UTC(),
		CurrentUnit: s.Unit.Name,
		CurrentPath: s.Path(),
		Operations:  e.OperationLog(),
		Errors:      e.ErrorLog(),
		Catalog: &CatalogDoc{
			Degree:  e.Catalog().Degree(),
			Entries: e.Catalog().Serialize(),
		},
	}
	for _, u := range e.Store().Units() {
		doc.Units = append(doc.Units, UnitDoc{Name: u.Name, Root: captureDirectory(u.Root)})
	}
	return doc
}

func captureDirectory(d *store.Directory) DirectoryDoc {
	doc := DirectoryDoc{
		Name:       d.Name,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
	}
	for _, sub := range d.Subdirs {
		doc.Subdirs = append(doc.Subdirs, captureDirectory(sub))
	}
	for _, f := range d.Files(store.PreOrder) {
		doc.Files = append(doc.Files, FileDoc{
			Name:       f.Name,
			Content:    f.Content,
			CreatedAt:  f.CreatedAt,
			ModifiedAt: f.ModifiedAt,
		})
	}
	return doc
}

// Apply rebuilds a store from the document and swaps it into the
// engine. The replacement is fully built before the engine sees it, so
// a malformed document leaves live state untouched. The saved position
// degrades softly: an unknown unit falls back to the first, a dead path
// to the unit root.
func Apply(e *engine.Engine, doc *Document) error {
	if len(doc.Units) == 0 {
		return fmt.Errorf("%w: document has no units", ErrPersistence)
	}

	st := store.New()
	for _, ud := range doc.Units {
		unit, err := store.NewStorageUnit(ud.Name)
		if err != nil {
			return fmt.Errorf("%w: unit %q: %w", ErrPersistence, ud.Name, err)
		}
		if err := applyDirectory(unit.Root, ud.Root); err != nil {
			return fmt.Errorf("%w: unit %q: %w", ErrPersistence, ud.Name, err)
		}
		if err := st.Attach(unit); err != nil {
			return fmt.Errorf("%w: unit %q: %w", ErrPersistence, ud.Name, err)
		}
	}

	var cat *index.Index
	if doc.Catalog != nil {
		cat = index.Deserialize(doc.Catalog.Entries, doc.Catalog.Degree)
	}
	e.Adopt(st, cat, doc.Operations, doc.Errors, doc.CurrentUnit, doc.CurrentPath)
	return nil
}

// applyDirectory fills dst from doc: subdirectories first, then the
// preorder file replay, then the recorded timestamps, since adding
// children touches the parent.
func applyDirectory(dst *store.Directory, doc DirectoryDoc) error {
	for _, sub := range doc.Subdirs {
		child := store.NewDirectory(sub.Name)
		if err := dst.AddSubdir(child); err != nil {
			return err
		}
		if err := applyDirectory(child, sub); err != nil {
			return err
		}
	}
	for _, fd := range doc.Files {
		f := store.NewFile(fd.Name, fd.Content)
		f.CreatedAt, f.ModifiedAt = fd.CreatedAt, fd.ModifiedAt
		if err := dst.AddFile(f); err != nil {
			return err
		}
	}
	dst.CreatedAt, dst.ModifiedAt = doc.CreatedAt, doc.ModifiedAt
	return nil
}

// Encode renders the document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrPersistence, err)
	}
	return data, nil
}

// Decode parses a document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrPersistence, err)
	}
	return &doc, nil
}
