// Package idea provides the in-memory mind map tree edited before it is
// exchanged with a MindMup viewer.
//
// # Overview
//
// A [Tree] owns a root [Node]. Every node has a title, an optional integer
// id, optional [Attributes] and an ordered list of children it exclusively
// owns. Nodes store no parent pointers; ownership is expressed only by the
// children lists, so the structure is always a tree.
//
//	t := idea.NewTree("plan")
//	a := idea.NewNode("research")
//	b := idea.NewNode("write")
//	t.Append(t.Root, a)
//	t.Append(t.Root, b)
//	a.AddMeasure("hours", 4)
//	t.Links.Add(a, b, idea.LinkStyle{})
//
// # Identity and Ids
//
// Two keying schemes coexist. While editing, nodes are identified by an
// opaque handle that never changes. On the wire they are identified by an
// integer id. [Tree.AssignIDs] and [Tree.ReorderIDs] number the tree in
// canonical pre-order ([Walk]) and return an [IDTable] that maps ids back
// to nodes for the steps that follow.
//
// # Links
//
// The [LinkRegistry] keys cross links by endpoint identity, so renumbering
// never invalidates them. [LinkRegistry.Resolve] converts them to id pairs
// at export, [LinkRegistry.Rebuild] converts id pairs back at import.
//
// # Measurements
//
// Nodes carry named string measurements ([Node.AddMeasure]). The tree
// aggregates the distinct names into [Tree.MeasurementsConfig] with
// [Tree.RecomputeMeasurements], in first-seen pre-order.
//
// # Structural Edits
//
// [Tree.Append] and [Tree.Remove] keep every index in step: removing a node
// drops its whole subtree from the id table, the link registry and any
// [SharedNodes] index in one call.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. A tree is a single
// mutable document with one owner.
package idea
