package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/store"
)

// populatedEngine builds an engine with two units of content, history
// and a non-root current directory.
func populatedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Options{Units: []string{"C:", "D:"}, LogOperations: true})
	require.NoError(t, err)
	s := e.DefaultSession()

	for _, p := range []string{"C:/docs", "C:/docs/work", "D:/backup"} {
		_, err := e.CreateDirectory(s, p)
		require.NoError(t, err)
	}
	for _, f := range []struct{ path, content string }{
		{"C:/docs/m.txt", "m"},
		{"C:/docs/d.txt", "d"},
		{"C:/docs/t.txt", "t"},
		{"C:/docs/work/draft.txt", "draft"},
		{"D:/backup/old.zip", "zip"},
	} {
		_, _, err := e.CreateFile(s, f.path, f.content)
		require.NoError(t, err)
	}
	_, err = e.ChangeDirectory(s, "C:/docs/work")
	require.NoError(t, err)
	_, err = e.ChangeDirectory(s, "C:/ghost")
	require.Error(t, err)
	return e
}

// TestCaptureDocument tests the captured shape and saved position.
func TestCaptureDocument(t *testing.T) {
	e := populatedEngine(t)
	doc := Capture(e)

	assert.True(t, strings.HasPrefix(doc.ID, "snap_"))
	assert.False(t, doc.TakenAt.IsZero())
	assert.Equal(t, "C:", doc.CurrentUnit)
	assert.Equal(t, "C:/docs/work", doc.CurrentPath)
	assert.NotEmpty(t, doc.Operations)
	assert.NotEmpty(t, doc.Errors)

	require.Len(t, doc.Units, 2)
	assert.Equal(t, "C:", doc.Units[0].Name)
	require.Len(t, doc.Units[0].Root.Subdirs, 1)
	docs := doc.Units[0].Root.Subdirs[0]
	assert.Equal(t, "docs", docs.Name)

	// Preorder of the BST built by inserting m, d, t.
	names := []string{}
	for _, f := range docs.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"m.txt", "d.txt", "t.txt"}, names)

	require.NotNil(t, doc.Catalog)
	assert.Len(t, doc.Catalog.Entries, 5)
}

// TestRoundTrip tests that capture, apply and capture agree.
func TestRoundTrip(t *testing.T) {
	e1 := populatedEngine(t)

	data, err := Encode(Capture(e1))
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)

	e2, err := engine.New(engine.Options{Units: []string{"X:"}, LogOperations: true})
	require.NoError(t, err)
	require.NoError(t, Apply(e2, doc))

	again := Capture(e2)
	assert.Equal(t, doc.Units, again.Units)
	assert.Equal(t, doc.CurrentUnit, again.CurrentUnit)
	assert.Equal(t, doc.CurrentPath, again.CurrentPath)
	assert.Equal(t, doc.Operations, again.Operations)
	assert.Equal(t, doc.Errors, again.Errors)
	require.NotNil(t, again.Catalog)
	assert.Len(t, again.Catalog.Entries, len(doc.Catalog.Entries))

	assert.Equal(t, "C:/docs/work", e2.DefaultSession().Path())
	f, _, err := e2.ReadFile(e2.DefaultSession(), "draft.txt")
	require.NoError(t, err)
	assert.Equal(t, "draft", f.Content)
}

// TestApplyRebuildsCatalog tests restore of a document saved without one.
func TestApplyRebuildsCatalog(t *testing.T) {
	e1 := populatedEngine(t)
	doc := Capture(e1)
	doc.Catalog = nil

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	require.NoError(t, Apply(e2, doc))
	assert.Equal(t, 5, e2.Catalog().Len())
}

// TestApplyFailSoftPosition tests unknown units and dead paths degrade
// to usable positions.
func TestApplyFailSoftPosition(t *testing.T) {
	e1 := populatedEngine(t)
	doc := Capture(e1)
	doc.CurrentUnit = "Q:"
	doc.CurrentPath = "Q:/nowhere"

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	require.NoError(t, Apply(e2, doc))
	assert.Equal(t, "C:", e2.DefaultSession().Path())
}

// TestApplyRejectsEmptyDocument tests that a unitless document fails.
func TestApplyRejectsEmptyDocument(t *testing.T) {
	e, err := engine.New(engine.Options{})
	require.NoError(t, err)

	err = Apply(e, &Document{})
	assert.ErrorIs(t, err, ErrPersistence)
}

// TestApplyRejectsBadTree tests that live state survives a corrupt document.
func TestApplyRejectsBadTree(t *testing.T) {
	e := populatedEngine(t)
	before := e.Store()

	bad := &Document{
		Units: []UnitDoc{{
			Name: "C:",
			Root: DirectoryDoc{
				Name:  "C:",
				Files: []FileDoc{{Name: "no-extension", Content: "x"}},
			},
		}},
	}
	err := Apply(e, bad)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, store.ErrInvalidName)
	assert.Same(t, before, e.Store())
	assert.Equal(t, 5, e.Catalog().Len())
}

// TestDecodeGarbage tests that invalid JSON maps to ErrPersistence.
func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrPersistence)
}
