package idea

import (
	"maps"
	"slices"
	"strconv"
)

// DuplicatePolicy selects how [Tree.AssignIDs] treats repeated ids when it
// keeps existing ids.
type DuplicatePolicy int

const (
	// Strict fails with a *DuplicateIDError on the first repeated id.
	Strict DuplicatePolicy = iota

	// Lenient keeps the node's wire id unchanged and registers the node in
	// the id table under a bookkeeping alias ("_5", "__5", ...) so the table
	// stays queryable. Exported ids are never altered.
	Lenient
)

const (
	// RootID is the id of every tree's root.
	RootID = 1

	// aliasPrefix marks bookkeeping keys of lenient duplicates.
	aliasPrefix = "_"
)

// IDTable maps wire ids to nodes for one numbering of a tree.
// It is produced by [Tree.AssignIDs] and [Tree.ReorderIDs] and passed to the
// steps that need it, such as link resolution.
type IDTable struct {
	byID    map[int]*Node
	aliases map[string]*Node
	ids     map[*Node]int
}

func newIDTable() *IDTable {
	return &IDTable{
		byID:    make(map[int]*Node),
		aliases: make(map[string]*Node),
		ids:     make(map[*Node]int),
	}
}

// Node returns the node registered under id.
func (t *IDTable) Node(id int) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.byID[id]
	return n, ok
}

// Alias returns the node registered under a lenient bookkeeping key.
func (t *IDTable) Alias(key string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.aliases[key]
	return n, ok
}

// Aliases returns all bookkeeping keys in sorted order.
func (t *IDTable) Aliases() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.aliases))
}

// ID returns the id under which n was numbered.
func (t *IDTable) ID(n *Node) (int, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.ids[n]
	return id, ok
}

// Contains reports whether n is part of this numbering.
func (t *IDTable) Contains(n *Node) bool {
	_, ok := t.ID(n)
	return ok
}

// Len returns the number of nodes in the table, aliases included.
func (t *IDTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

func (t *IDTable) add(n *Node, id int) {
	t.byID[id] = n
	t.ids[n] = id
}

func (t *IDTable) addAlias(key string, n *Node, id int) {
	t.aliases[key] = n
	t.ids[n] = id
}

func (t *IDTable) remove(n *Node) {
	if t == nil {
		return
	}
	id, ok := t.ids[n]
	if !ok {
		return
	}
	delete(t.ids, n)
	if t.byID[id] == n {
		delete(t.byID, id)
	}
	for k, v := range t.aliases {
		if v == n {
			delete(t.aliases, k)
		}
	}
}

// IDs returns the id table of the latest numbering, or nil if the tree has
// not been numbered yet. Removing nodes keeps the table in sync.
func (t *Tree) IDs() *IDTable { return t.ids }

// AssignIDs numbers the tree and returns the resulting id table. The root
// is always 1.
//
// With autoIncrement set, every node receives its 1-based pre-order rank,
// overwriting existing ids.
//
// Otherwise existing ids are kept. Nodes without an id receive fresh ids
// above the largest id in the tree, in pre-order. A repeated id, including
// a non-root node holding 1, is handled according to policy: Strict returns
// a *DuplicateIDError, Lenient records the node under a bookkeeping alias
// without changing its id. On error the tree is left unchanged.
func (t *Tree) AssignIDs(autoIncrement bool, policy DuplicatePolicy) (*IDTable, error) {
	if autoIncrement {
		return t.ReorderIDs(), nil
	}

	next := RootID
	for s := range t.Walk() {
		if s.Node != t.Root {
			next = max(next, s.Node.ID)
		}
	}

	staged := make(map[*Node]int)
	table := newIDTable()
	for s := range t.Walk() {
		n := s.Node
		id := n.ID
		switch {
		case n == t.Root:
			id = RootID
		case id <= 0:
			next++
			id = next
		}
		staged[n] = id
		if _, seen := table.byID[id]; !seen {
			table.add(n, id)
			continue
		}
		if policy == Strict {
			return nil, &DuplicateIDError{ID: id}
		}
		key := aliasPrefix + strconv.Itoa(id)
		for {
			if _, taken := table.aliases[key]; !taken {
				break
			}
			key = aliasPrefix + key
		}
		table.addAlias(key, n, id)
	}

	for n, id := range staged {
		n.ID = id
	}
	t.ids = table
	return table, nil
}

// ReorderIDs renumbers every node 1..N in pre-order regardless of current ids.
func (t *Tree) ReorderIDs() *IDTable {
	table := newIDTable()
	id := 0
	for s := range t.Walk() {
		id++
		s.Node.ID = id
		table.add(s.Node, id)
	}
	t.ids = table
	return table
}
