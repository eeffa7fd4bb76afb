package idea

import "github.com/matzehuels/mindmup/pkg/keyed"

// Constructor builds the node created for a missing key.
type Constructor func(key string) *Node

// DefaultConstructor titles the node after its key and marks it collapsed.
func DefaultConstructor(key string) *Node {
	n := NewNode(key)
	n.SetCollapsed(true)
	return n
}

// SharedNodes looks up children of one parent by a semantic key (for
// example a title) instead of by position, creating them on demand.
//
// It is obtained from [Tree.Shared]; the tree keeps the index in sync when
// keyed children are removed with [Tree.Remove].
type SharedNodes struct {
	tree   *Tree
	parent *Node
	index  *keyed.Collection[*Node]

	// New builds nodes for missing keys. Defaults to DefaultConstructor.
	New Constructor
}

// Shared returns the keyed child manager of parent, creating it on first use.
// Returns ErrNotInTree if parent is not part of the tree.
func (t *Tree) Shared(parent *Node) (*SharedNodes, error) {
	if parent == nil {
		return nil, ErrNilNode
	}
	if sn, ok := t.shared[parent]; ok {
		return sn, nil
	}
	if !t.Contains(parent) {
		return nil, ErrNotInTree
	}
	if t.shared == nil {
		t.shared = make(map[*Node]*SharedNodes)
	}
	sn := &SharedNodes{
		tree:   t,
		parent: parent,
		index:  keyed.New[*Node](),
		New:    DefaultConstructor,
	}
	t.shared[parent] = sn
	return sn, nil
}

// Parent returns the node whose children are managed.
func (s *SharedNodes) Parent() *Node { return s.parent }

// Node returns the child stored under key, creating and appending it with
// the constructor if the key is unknown.
func (s *SharedNodes) Node(key string) (*Node, error) {
	if n, ok := s.index.Get(key); ok {
		return n, nil
	}
	n := s.New(key)
	if err := s.Set(key, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Set appends a detached node to the parent under key.
func (s *SharedNodes) Set(key string, n *Node) error {
	if s.index.Contains(key) {
		return keyed.ErrDuplicateKey
	}
	if err := s.tree.Append(s.parent, n); err != nil {
		return err
	}
	return s.index.AppendKey(key, n)
}

// Pop removes the child stored under key from the tree and returns it.
// For an unknown key it returns nil, or a fresh detached node built by the
// constructor when useDefault is set.
func (s *SharedNodes) Pop(key string, useDefault bool) (*Node, error) {
	n, ok := s.index.Get(key)
	if !ok {
		if useDefault {
			return s.New(key), nil
		}
		return nil, nil
	}
	if err := s.tree.Remove(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Contains reports whether key is indexed.
func (s *SharedNodes) Contains(key string) bool { return s.index.Contains(key) }

// Keys returns the indexed keys in insertion order.
func (s *SharedNodes) Keys() []string { return s.index.Keys() }

// Len returns the number of keyed children.
func (s *SharedNodes) Len() int { return s.index.Len() }
