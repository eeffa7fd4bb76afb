package idea

import "iter"

// FormatVersion is the only wire format version the tree supports.
const FormatVersion = 2

// Step is one position of a pre-order traversal.
type Step struct {
	Node     *Node
	Children []*Node
	Depth    int // 0 for the node the walk started from
}

// Walk returns a lazy depth-first pre-order traversal of the subtree rooted
// at root. The sequence is restartable: every range over it starts a fresh
// walk, so callers can re-walk after mutating the tree. The order is the
// canonical order for id assignment and for the wire "ideas" map.
func Walk(root *Node) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if root != nil {
			walk(root, 0, yield)
		}
	}
}

func walk(n *Node, depth int, yield func(Step) bool) bool {
	if !yield(Step{Node: n, Children: n.children, Depth: depth}) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, depth+1, yield) {
			return false
		}
	}
	return true
}

// Tree owns a root idea and the document-level state around it: the format
// version, the derived measurements config, the identity-keyed link
// registry, the id table of the latest numbering and the shared-node
// indexes.
//
// The zero value is not usable - use NewTree or NewTreeFromRoot.
// Tree is not safe for concurrent use.
type Tree struct {
	Root               *Node
	FormatVersion      int
	MeasurementsConfig []string
	Links              *LinkRegistry

	ids    *IDTable
	shared map[*Node]*SharedNodes
}

// NewTree creates a tree whose root has the given title.
func NewTree(title string) *Tree {
	return NewTreeFromRoot(NewNode(title))
}

// NewTreeFromRoot wraps an existing root node.
func NewTreeFromRoot(root *Node) *Tree {
	return &Tree{
		Root:          root,
		FormatVersion: FormatVersion,
		Links:         NewLinkRegistry(),
		shared:        make(map[*Node]*SharedNodes),
	}
}

// Walk traverses the whole tree in pre-order.
func (t *Tree) Walk() iter.Seq[Step] { return Walk(t.Root) }

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	n := 0
	for range t.Walk() {
		n++
	}
	return n
}

// Contains reports whether n is reachable from the root.
func (t *Tree) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	for s := range t.Walk() {
		if s.Node == n {
			return true
		}
	}
	return false
}

// Parent returns the owner of n, or nil for the root and for nodes outside
// the tree.
func (t *Tree) Parent(n *Node) *Node {
	for s := range t.Walk() {
		for _, c := range s.Children {
			if c == n {
				return s.Node
			}
		}
	}
	return nil
}

// Append attaches child as the last child of parent.
//
// Returns ErrNilNode for nil arguments, ErrNotInTree if parent is not part
// of the tree, and ErrAlreadyAttached if child (or any node below it) is
// already reachable from the root.
func (t *Tree) Append(parent, child *Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if !t.Contains(parent) {
		return ErrNotInTree
	}
	inTree := make(map[*Node]bool)
	for s := range t.Walk() {
		inTree[s.Node] = true
	}
	for s := range Walk(child) {
		if inTree[s.Node] {
			return ErrAlreadyAttached
		}
	}
	return parent.Append(child)
}

// Remove detaches n (and its subtree) from the tree. In the same step every
// removed node is dropped from the id table, from all links that reference
// it and from every shared-node index, so no structure keeps a removed node
// reachable.
//
// Returns ErrRemoveRoot for the root and ErrNotInTree for unknown nodes.
func (t *Tree) Remove(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n == t.Root {
		return ErrRemoveRoot
	}
	parent := t.Parent(n)
	if parent == nil {
		return ErrNotInTree
	}
	parent.removeChild(n)

	if sn, ok := t.shared[parent]; ok {
		sn.index.RemoveValue(n)
	}
	for s := range Walk(n) {
		t.ids.remove(s.Node)
		t.Links.RemoveNode(s.Node)
		delete(t.shared, s.Node)
	}
	return nil
}
