package store

// TraversalOrder selects how a directory's file tree is walked.
type TraversalOrder int

const (
	PreOrder TraversalOrder = iota
	InOrder
	PostOrder
)

// fileNode is a node of the per-directory binary search tree.
// Files are ordered by their lowercase name.
type fileNode struct {
	file  *File
	left  *fileNode
	right *fileNode
}

// fileTree is an unbalanced BST of files keyed by File.Key.
type fileTree struct {
	root *fileNode
	size int
}

func (t *fileTree) insert(f *File) error {
	key := f.Key()
	if t.root == nil {
		t.root = &fileNode{file: f}
		t.size++
		return nil
	}
	n := t.root
	for {
		switch {
		case key < n.file.Key():
			if n.left == nil {
				n.left = &fileNode{file: f}
				t.size++
				return nil
			}
			n = n.left
		case key > n.file.Key():
			if n.right == nil {
				n.right = &fileNode{file: f}
				t.size++
				return nil
			}
			n = n.right
		default:
			return ErrDuplicateName
		}
	}
}

func (t *fileTree) find(key string) *File {
	n := t.root
	for n != nil {
		switch {
		case key < n.file.Key():
			n = n.left
		case key > n.file.Key():
			n = n.right
		default:
			return n.file
		}
	}
	return nil
}

// remove deletes the file with the given key and returns it.
// A node with two children is replaced by its in-order successor, the
// minimum of the right subtree.
func (t *fileTree) remove(key string) *File {
	var removed *File
	t.root, removed = removeNode(t.root, key)
	if removed != nil {
		t.size--
	}
	return removed
}

func removeNode(n *fileNode, key string) (*fileNode, *File) {
	if n == nil {
		return nil, nil
	}
	var removed *File
	switch {
	case key < n.file.Key():
		n.left, removed = removeNode(n.left, key)
	case key > n.file.Key():
		n.right, removed = removeNode(n.right, key)
	default:
		removed = n.file
		if n.left == nil {
			return n.right, removed
		}
		if n.right == nil {
			return n.left, removed
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.file = succ.file
		n.right, _ = removeNode(n.right, succ.file.Key())
	}
	return n, removed
}

// traverse collects files in the requested order.
func (t *fileTree) traverse(order TraversalOrder) []*File {
	out := make([]*File, 0, t.size)
	var walk func(n *fileNode)
	walk = func(n *fileNode) {
		if n == nil {
			return
		}
		switch order {
		case PreOrder:
			out = append(out, n.file)
			walk(n.left)
			walk(n.right)
		case PostOrder:
			walk(n.left)
			walk(n.right)
			out = append(out, n.file)
		default:
			walk(n.left)
			out = append(out, n.file)
			walk(n.right)
		}
	}
	walk(t.root)
	return out
}
