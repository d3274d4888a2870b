package index

import "strings"

// btreeNode holds keys with their entry lists and child pointers.
// keys and values are parallel; children has len(keys)+1 elements in
// interior nodes.
type btreeNode struct {
	keys     []string
	values   [][]*Entry
	children []*btreeNode
	leaf     bool
}

// btree is a B-tree of minimum degree t keyed by lowercase file name.
// Nodes hold at most 2t-1 keys; insertion splits full nodes on the way
// down. Keys are never deleted from the tree itself; the catalog facade
// rebuilds from a filtered entry list instead.
type btree struct {
	root   *btreeNode
	degree int
}

func newBtree(degree int) *btree {
	if degree < 2 {
		degree = 2
	}
	return &btree{
		root:   &btreeNode{leaf: true},
		degree: degree,
	}
}

// search descends to the node and key position holding key.
func (t *btree) search(n *btreeNode, key string) (*btreeNode, int) {
	i := 0
	for i < len(n.keys) && key > n.keys[i] {
		i++
	}
	if i < len(n.keys) && key == n.keys[i] {
		return n, i
	}
	if n.leaf {
		return nil, 0
	}
	return t.search(n.children[i], key)
}

// insert adds an entry under its key, appending to the existing list
// when the key is already present.
func (t *btree) insert(e *Entry) {
	key := e.Key()
	if n, i := t.search(t.root, key); n != nil {
		n.values[i] = append(n.values[i], e)
		return
	}

	if len(t.root.keys) == 2*t.degree-1 {
		newRoot := &btreeNode{children: []*btreeNode{t.root}}
		t.splitChild(newRoot, 0)
		t.root = newRoot
	}
	t.insertNonFull(t.root, key, e)
}

func (t *btree) insertNonFull(n *btreeNode, key string, e *Entry) {
	i := len(n.keys) - 1
	if n.leaf {
		n.keys = append(n.keys, "")
		n.values = append(n.values, nil)
		for i >= 0 && key < n.keys[i] {
			n.keys[i+1] = n.keys[i]
			n.values[i+1] = n.values[i]
			i--
		}
		n.keys[i+1] = key
		n.values[i+1] = []*Entry{e}
		return
	}

	for i >= 0 && key < n.keys[i] {
		i--
	}
	i++
	if len(n.children[i].keys) == 2*t.degree-1 {
		t.splitChild(n, i)
		if key > n.keys[i] {
			i++
		}
	}
	t.insertNonFull(n.children[i], key, e)
}

// splitChild splits the full child at position i, promoting its median
// key (position t-1) into n.
func (t *btree) splitChild(n *btreeNode, i int) {
	child := n.children[i]
	mid := t.degree - 1

	right := &btreeNode{leaf: child.leaf}
	right.keys = append(right.keys, child.keys[t.degree:]...)
	right.values = append(right.values, child.values[t.degree:]...)
	if !child.leaf {
		right.children = append(right.children, child.children[t.degree:]...)
		child.children = child.children[:t.degree]
	}

	medianKey := child.keys[mid]
	medianVal := child.values[mid]
	child.keys = child.keys[:mid]
	child.values = child.values[:mid]

	n.keys = append(n.keys, "")
	n.values = append(n.values, nil)
	copy(n.keys[i+1:], n.keys[i:])
	copy(n.values[i+1:], n.values[i:])
	n.keys[i] = medianKey
	n.values[i] = medianVal

	n.children = append(n.children, nil)
	copy(n.children[i+2:], n.children[i+1:])
	n.children[i+1] = right
}

// inOrder visits every key in ascending order.
func (t *btree) inOrder(visit func(key string, entries []*Entry)) {
	var walk func(n *btreeNode)
	walk = func(n *btreeNode) {
		for i, key := range n.keys {
			if !n.leaf {
				walk(n.children[i])
			}
			visit(key, n.values[i])
		}
		if !n.leaf && len(n.children) > 0 {
			walk(n.children[len(n.keys)])
		}
	}
	walk(t.root)
}

// scan visits every key in node order, for queries that cannot use the
// key ordering (fragment and size filters walk the whole tree).
func (t *btree) scan(visit func(key string, entries []*Entry)) {
	var walk func(n *btreeNode)
	walk = func(n *btreeNode) {
		for i, key := range n.keys {
			visit(key, n.values[i])
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
}

// containsFragment reports a case-insensitive substring hit; keys are
// stored lowercase already.
func containsFragment(key, fragment string) bool {
	return strings.Contains(key, strings.ToLower(fragment))
}

// height returns the tree height, 1 for a lone root.
func (t *btree) height() int {
	h := 0
	for n := t.root; n != nil; {
		h++
		if n.leaf {
			break
		}
		n = n.children[0]
	}
	return h
}

// keyCount returns the number of distinct keys.
func (t *btree) keyCount() int {
	count := 0
	t.scan(func(string, []*Entry) { count++ })
	return count
}
