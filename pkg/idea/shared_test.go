package idea

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/mindmup/pkg/keyed"
)

func TestSharedNodeCreatesOnDemand(t *testing.T) {
	tr := NewTree("root")
	sn, err := tr.Shared(tr.Root)
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}

	a, err := sn.Node("alpha")
	if err != nil {
		t.Fatalf("Node(alpha): %v", err)
	}
	if a.Title != "alpha" || !a.IsCollapsed() {
		t.Errorf("created node = %q collapsed=%v, want alpha collapsed", a.Title, a.IsCollapsed())
	}
	again, _ := sn.Node("alpha")
	if again != a {
		t.Error("second Node(alpha) created a new node")
	}
	if !slices.Equal(tr.Root.Children(), []*Node{a}) {
		t.Errorf("root children = %v, want [alpha]", tr.Root.Children())
	}

	same, _ := tr.Shared(tr.Root)
	if same != sn {
		t.Error("Shared(root) returned a different manager")
	}
}

func TestSharedCustomConstructor(t *testing.T) {
	tr := NewTree("root")
	sn, _ := tr.Shared(tr.Root)
	sn.New = func(key string) *Node { return NewNode("pkg: " + key) }

	n, _ := sn.Node("requests")
	if n.Title != "pkg: requests" {
		t.Errorf("Title = %q", n.Title)
	}
}

func TestSharedPopMiddleKeepsIndexConsistent(t *testing.T) {
	tr := NewTree("root")
	sn, _ := tr.Shared(tr.Root)
	for _, k := range []string{"a", "b", "c", "d"} {
		if _, err := sn.Node(k); err != nil {
			t.Fatal(err)
		}
	}
	b, _ := sn.Node("b")
	tr.Links.Add(b, tr.Root, LinkStyle{})

	popped, err := sn.Pop("b", false)
	if err != nil || popped != b {
		t.Fatalf("Pop(b) = %v, %v", popped, err)
	}
	if tr.Contains(b) {
		t.Error("popped node still in tree")
	}
	if tr.Links.Len() != 0 {
		t.Error("link to popped node survived")
	}
	if sn.Contains("b") {
		t.Error("popped key still indexed")
	}
	for _, k := range []string{"a", "c", "d"} {
		n, _ := sn.Node(k)
		if n.Title != k {
			t.Errorf("Node(%q) = %q after pop", k, n.Title)
		}
	}
	if sn.Len() != 3 || tr.Len() != 4 {
		t.Errorf("Len = %d, tree Len = %d, want 3, 4", sn.Len(), tr.Len())
	}
}

func TestTreeRemoveUpdatesSharedIndex(t *testing.T) {
	tr := NewTree("root")
	sn, _ := tr.Shared(tr.Root)
	x, _ := sn.Node("x")
	y, _ := sn.Node("y")

	// Removing through the tree, not the manager, must still update the index.
	if err := tr.Remove(x); err != nil {
		t.Fatal(err)
	}
	if sn.Contains("x") {
		t.Error("index still contains removed node")
	}
	if got, _ := sn.Node("y"); got != y {
		t.Error("Node(y) does not resolve to the original node")
	}

	// A manager owned by a removed node is dropped with it.
	inner, _ := tr.Shared(y)
	inner.Node("deep")
	tr.Remove(y)
	rootIdx, _ := tr.Shared(tr.Root)
	if rootIdx.Len() != 0 {
		t.Errorf("root manager Len = %d, want 0", rootIdx.Len())
	}
	if _, err := tr.Shared(y); !errors.Is(err, ErrNotInTree) {
		t.Errorf("Shared(removed) error = %v, want ErrNotInTree", err)
	}
}

func TestSharedPopMissing(t *testing.T) {
	tr := NewTree("root")
	sn, _ := tr.Shared(tr.Root)

	n, err := sn.Pop("nope", false)
	if err != nil || n != nil {
		t.Errorf("Pop(nope, false) = %v, %v, want nil, nil", n, err)
	}
	n, err = sn.Pop("nope", true)
	if err != nil || n == nil || n.Title != "nope" {
		t.Errorf("Pop(nope, true) = %v, %v, want default node", n, err)
	}
	if tr.Contains(n) {
		t.Error("default node must stay detached")
	}
}

func TestSharedSetDuplicateKey(t *testing.T) {
	tr := NewTree("root")
	sn, _ := tr.Shared(tr.Root)
	if err := sn.Set("k", NewNode("one")); err != nil {
		t.Fatal(err)
	}
	if err := sn.Set("k", NewNode("two")); !errors.Is(err, keyed.ErrDuplicateKey) {
		t.Errorf("Set duplicate error = %v, want ErrDuplicateKey", err)
	}
	if len(tr.Root.Children()) != 1 {
		t.Errorf("children = %d, want 1", len(tr.Root.Children()))
	}
}
