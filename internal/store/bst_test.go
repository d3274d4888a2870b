package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertAll(t *testing.T, tree *fileTree, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, tree.insert(NewFile(name, "x")))
	}
}

func names(files []*File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

// TestBSTInOrderSorted tests that in-order traversal yields lowercase order
func TestBSTInOrderSorted(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "m.txt", "b.txt", "Z.txt", "a.txt", "q.txt")

	got := names(tree.traverse(InOrder))
	assert.Equal(t, []string{"a.txt", "b.txt", "m.txt", "q.txt", "Z.txt"}, got)
	assert.Equal(t, 5, tree.size)
}

// TestBSTDuplicateRejected tests case-insensitive duplicate detection
func TestBSTDuplicateRejected(t *testing.T) {
	tree := &fileTree{}
	require.NoError(t, tree.insert(NewFile("Notes.txt", "")))

	err := tree.insert(NewFile("notes.TXT", ""))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, tree.size)
}

// TestBSTFind tests exact lookup by lowercase key
func TestBSTFind(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "b.txt", "a.txt", "c.txt")

	assert.Equal(t, "b.txt", tree.find("b.txt").Name)
	assert.Nil(t, tree.find("missing.txt"))
}

// TestBSTRemoveLeaf tests removing a node with no children
func TestBSTRemoveLeaf(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "m.txt", "b.txt", "q.txt")

	removed := tree.remove("b.txt")
	require.NotNil(t, removed)
	assert.Equal(t, "b.txt", removed.Name)
	assert.Equal(t, []string{"m.txt", "q.txt"}, names(tree.traverse(InOrder)))
}

// TestBSTRemoveSingleChild tests splicing a one-child node
func TestBSTRemoveSingleChild(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "m.txt", "b.txt", "a.txt")

	removed := tree.remove("b.txt")
	require.NotNil(t, removed)
	assert.Equal(t, []string{"a.txt", "m.txt"}, names(tree.traverse(InOrder)))
}

// TestBSTRemoveTwoChildren tests successor replacement
func TestBSTRemoveTwoChildren(t *testing.T) {
	tree := &fileTree{}
	// m is the root with children on both sides; its successor is n.
	insertAll(t, tree, "m.txt", "d.txt", "t.txt", "n.txt", "z.txt")

	removed := tree.remove("m.txt")
	require.NotNil(t, removed)
	assert.Equal(t, "m.txt", removed.Name)
	assert.Equal(t, "n.txt", tree.root.file.Name)
	assert.Equal(t, []string{"d.txt", "n.txt", "t.txt", "z.txt"}, names(tree.traverse(InOrder)))
	assert.Equal(t, 4, tree.size)
}

// TestBSTRemoveMissing tests that removing an absent key is a no-op
func TestBSTRemoveMissing(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "a.txt")

	assert.Nil(t, tree.remove("b.txt"))
	assert.Equal(t, 1, tree.size)
}

// TestBSTTraversalOrders tests pre/in/post order against a known shape
func TestBSTTraversalOrders(t *testing.T) {
	tree := &fileTree{}
	// Shape:      m
	//           /   \
	//          d     t
	//           \   /
	//            g r
	insertAll(t, tree, "m.txt", "d.txt", "t.txt", "g.txt", "r.txt")

	assert.Equal(t, []string{"m.txt", "d.txt", "g.txt", "t.txt", "r.txt"}, names(tree.traverse(PreOrder)))
	assert.Equal(t, []string{"d.txt", "g.txt", "m.txt", "r.txt", "t.txt"}, names(tree.traverse(InOrder)))
	assert.Equal(t, []string{"g.txt", "d.txt", "r.txt", "t.txt", "m.txt"}, names(tree.traverse(PostOrder)))
}

// TestBSTPreorderRebuild tests that reinsertion in preorder reproduces the shape
func TestBSTPreorderRebuild(t *testing.T) {
	tree := &fileTree{}
	insertAll(t, tree, "m.txt", "d.txt", "t.txt", "g.txt", "r.txt", "a.txt", "z.txt")

	rebuilt := &fileTree{}
	for _, f := range tree.traverse(PreOrder) {
		require.NoError(t, rebuilt.insert(f))
	}

	assert.Equal(t, names(tree.traverse(PreOrder)), names(rebuilt.traverse(PreOrder)))
	assert.Equal(t, names(tree.traverse(PostOrder)), names(rebuilt.traverse(PostOrder)))
}
