package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memstack/memdrive/internal/store"
)

// TestCreateDirectory tests nested creation and canonical paths.
func TestCreateDirectory(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	abs, err := e.CreateDirectory(s, "C:/docs")
	require.NoError(t, err)
	assert.Equal(t, "C:/docs", abs)

	_, err = e.ChangeDirectory(s, "docs")
	require.NoError(t, err)

	abs, err = e.CreateDirectory(s, "work")
	require.NoError(t, err)
	assert.Equal(t, "C:/docs/work", abs)

	_, err = e.CreateDirectory(s, "C:/docs")
	assert.ErrorIs(t, err, store.ErrNameConflict)

	_, err = e.CreateDirectory(s, "C:/ghost/sub")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestCreateFileIndexes tests that new files land in the catalog.
func TestCreateFileIndexes(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	f, abs, err := e.CreateFile(s, "C:/notes.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "C:/notes.txt", abs)
	assert.Equal(t, "txt", f.Extension)

	entries := e.Catalog().SearchExact("notes.txt")
	require.Len(t, entries, 1)
	assert.Equal(t, "C:/notes.txt", entries[0].FullPath)
	assert.Equal(t, 1, entries[0].SizeKB)
	assert.Equal(t, f.CreatedAt, entries[0].CreatedAt)
}

// TestCreateFileValidation tests that a rejected file leaves no trace.
func TestCreateFileValidation(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	_, _, err := e.CreateFile(s, "C:/noext", "x")
	assert.ErrorIs(t, err, store.ErrInvalidName)
	_, _, err = e.CreateFile(s, "C:/bad|name.txt", "x")
	assert.ErrorIs(t, err, store.ErrInvalidName)

	assert.Equal(t, 0, e.Catalog().Len())
	assert.Empty(t, treeFilePaths(e))
	assert.Len(t, e.ErrorLog(), 2)
}

// TestCreateFileConflicts tests both namespaces block the new name.
func TestCreateFileConflicts(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	_, err := e.CreateDirectory(s, "C:/report.txt")
	require.NoError(t, err)
	_, _, err = e.CreateFile(s, "C:/Report.txt", "x")
	assert.ErrorIs(t, err, store.ErrNameConflict)

	_, _, err = e.CreateFile(s, "C:/notes.txt", "x")
	require.NoError(t, err)
	_, _, err = e.CreateFile(s, "C:/NOTES.TXT", "y")
	assert.ErrorIs(t, err, store.ErrDuplicateName)
	assert.Equal(t, 1, e.Catalog().Len())
}

// TestWriteFile tests content replacement and catalog size refresh.
func TestWriteFile(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	f, _, err := e.CreateFile(s, "C:/log.txt", "small")
	require.NoError(t, err)
	created := f.CreatedAt

	big := make([]byte, 2049)
	_, abs, err := e.WriteFile(s, "C:/log.txt", string(big))
	require.NoError(t, err)
	assert.Equal(t, "C:/log.txt", abs)

	assert.Equal(t, created, f.CreatedAt)
	assert.False(t, f.ModifiedAt.Before(created))

	entries := e.Catalog().SearchExact("log.txt")
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].SizeKB)
	assert.Equal(t, created, entries[0].CreatedAt)

	_, _, err = e.WriteFile(s, "C:/ghost.txt", "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestRemoveFile tests deletion and exact catalog removal.
func TestRemoveFile(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	_, _, err := e.CreateFile(s, "C:/a.txt", "x")
	require.NoError(t, err)
	_, _, err = e.CreateFile(s, "C:/b.txt", "y")
	require.NoError(t, err)

	abs, err := e.RemoveFile(s, "C:/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "C:/a.txt", abs)
	assert.Equal(t, []string{"C:/b.txt"}, catalogPaths(e))

	_, err = e.RemoveFile(s, "C:/a.txt")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestRemoveDirectoryGuards tests the root and not-empty protections.
func TestRemoveDirectoryGuards(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	_, _, err := e.RemoveDirectory(s, "C:/", false)
	assert.ErrorIs(t, err, store.ErrRootViolation)

	_, err2 := e.CreateDirectory(s, "C:/docs")
	require.NoError(t, err2)
	_, _, err2 = e.CreateFile(s, "C:/docs/a.txt", "x")
	require.NoError(t, err2)

	_, _, err = e.RemoveDirectory(s, "C:/docs", false)
	assert.ErrorIs(t, err, store.ErrNotEmpty)
	assert.Equal(t, []string{"C:/docs/a.txt"}, catalogPaths(e))
}

// TestRemoveDirectoryRecursive tests that exactly the subtree leaves
// the catalog, sibling prefixes included.
func TestRemoveDirectoryRecursive(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	for _, p := range []string{"C:/docs", "C:/docs/work", "C:/docs2"} {
		_, err := e.CreateDirectory(s, p)
		require.NoError(t, err)
	}
	for _, p := range []string{"C:/docs/a.txt", "C:/docs/work/b.txt", "C:/docs2/c.txt"} {
		_, _, err := e.CreateFile(s, p, "x")
		require.NoError(t, err)
	}

	abs, removed, err := e.RemoveDirectory(s, "C:/docs", true)
	require.NoError(t, err)
	assert.Equal(t, "C:/docs", abs)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"C:/docs2/c.txt"}, catalogPaths(e))
	assert.Equal(t, treeFilePaths(e), catalogPaths(e))
}

// TestRemoveDirectoryRelocatesSessions tests that sessions inside the
// removed subtree land at the unit root.
func TestRemoveDirectoryRelocatesSessions(t *testing.T) {
	e := newTestEngine(t)
	def := e.DefaultSession()

	_, err := e.CreateDirectory(def, "C:/docs")
	require.NoError(t, err)
	_, err = e.CreateDirectory(def, "C:/docs/work")
	require.NoError(t, err)

	visitor := e.NewSession()
	_, err = e.ChangeDirectory(visitor, "C:/docs/work")
	require.NoError(t, err)
	_, err = e.ChangeDirectory(def, "C:/docs")
	require.NoError(t, err)

	bystander := e.NewSession()
	_, err = e.ChangeUnit(bystander, "D:")
	require.NoError(t, err)

	_, _, err = e.RemoveDirectory(def, "C:/docs", true)
	require.NoError(t, err)

	assert.Equal(t, "C:", visitor.Path())
	assert.Equal(t, "C:", def.Path())
	assert.Equal(t, "D:", bystander.Path())
}

// TestRenameFile tests timestamp preservation and catalog rewrite.
func TestRenameFile(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	f, _, err := e.CreateFile(s, "C:/draft.txt", "body")
	require.NoError(t, err)
	created, modified := f.CreatedAt, f.ModifiedAt

	abs, err := e.Rename(s, "C:/draft.txt", "final.md")
	require.NoError(t, err)
	assert.Equal(t, "C:/final.md", abs)
	assert.Equal(t, "final.md", f.Name)
	assert.Equal(t, "md", f.Extension)
	assert.Equal(t, created, f.CreatedAt)
	assert.Equal(t, modified, f.ModifiedAt)

	assert.Empty(t, e.Catalog().SearchExact("draft.txt"))
	entries := e.Catalog().SearchExact("final.md")
	require.Len(t, entries, 1)
	assert.Equal(t, "C:/final.md", entries[0].FullPath)
	assert.Equal(t, "md", entries[0].Extension)
	assert.Equal(t, created, entries[0].CreatedAt)
}

// TestRenameDirectory tests that every entry underneath moves.
func TestRenameDirectory(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	for _, p := range []string{"C:/docs", "C:/docs/work", "C:/docs2"} {
		_, err := e.CreateDirectory(s, p)
		require.NoError(t, err)
	}
	for _, p := range []string{"C:/docs/a.txt", "C:/docs/work/b.txt", "C:/docs2/c.txt"} {
		_, _, err := e.CreateFile(s, p, "x")
		require.NoError(t, err)
	}

	abs, err := e.Rename(s, "C:/docs", "archive")
	require.NoError(t, err)
	assert.Equal(t, "C:/archive", abs)
	assert.Equal(t,
		[]string{"C:/archive/a.txt", "C:/archive/work/b.txt", "C:/docs2/c.txt"},
		catalogPaths(e))
	assert.Equal(t, treeFilePaths(e), catalogPaths(e))
}

// TestRenameConflicts tests cross-namespace blocking and self case change.
func TestRenameConflicts(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	_, err := e.CreateDirectory(s, "C:/docs")
	require.NoError(t, err)
	_, _, err = e.CreateFile(s, "C:/notes.txt", "x")
	require.NoError(t, err)

	_, err = e.Rename(s, "C:/notes.txt", "docs.txt")
	require.NoError(t, err)
	_, err = e.Rename(s, "C:/docs", "docs.txt")
	assert.ErrorIs(t, err, store.ErrNameConflict)

	abs, err := e.Rename(s, "C:/docs", "DOCS")
	require.NoError(t, err)
	assert.Equal(t, "C:/DOCS", abs)

	_, err = e.Rename(s, "C:/ghost", "other")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestMutationSequenceConsistency tests the catalog matches the trees
// after a mixed workload.
func TestMutationSequenceConsistency(t *testing.T) {
	e := newTestEngine(t)
	s := e.DefaultSession()

	for _, p := range []string{"C:/docs", "C:/docs/work", "C:/media", "D:/backup"} {
		_, err := e.CreateDirectory(s, p)
		require.NoError(t, err)
	}
	for _, p := range []string{"C:/docs/a.txt", "C:/docs/work/b.txt", "C:/media/c.jpg", "D:/backup/d.zip"} {
		_, _, err := e.CreateFile(s, p, "x")
		require.NoError(t, err)
	}

	_, _, err := e.WriteFile(s, "C:/docs/a.txt", "longer content")
	require.NoError(t, err)
	_, err = e.RemoveFile(s, "C:/media/c.jpg")
	require.NoError(t, err)
	_, err = e.Rename(s, "C:/docs/work", "done")
	require.NoError(t, err)
	_, _, err = e.RemoveDirectory(s, "D:/backup", true)
	require.NoError(t, err)

	assert.Equal(t, treeFilePaths(e), catalogPaths(e))
	assert.Equal(t,
		[]string{"C:/docs/a.txt", "C:/docs/done/b.txt"},
		catalogPaths(e))

	before := catalogPaths(e)
	e.RebuildIndex()
	assert.Equal(t, before, catalogPaths(e))
}
