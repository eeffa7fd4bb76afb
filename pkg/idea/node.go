package idea

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Style holds the visual attributes of an idea.
type Style struct {
	Color      string
	LineStyle  string
	Background string
}

// Attachment is rich content attached to an idea, usually HTML.
type Attachment struct {
	ContentType string
	Content     string
}

// Attributes is the optional attribute bag of an idea.
// Every field is optional; nil means "absent" rather than a zero value.
type Attributes struct {
	Style        *Style
	Collapsed    *bool
	Attachment   *Attachment
	Measurements *Measurements
}

// AttachmentContentType is the content type used by [Node.AddAttachment].
const AttachmentContentType = "text/html"

// attachmentSeparator joins appended attachment fragments.
const attachmentSeparator = " <hr> "

// Node is one entry of the mind map together with its ordered children.
//
// A node exclusively owns its children: the structure is a tree and nodes
// carry no parent pointers. Every node has an opaque identity handle that
// is independent of its integer ID, which may be unassigned (zero) or
// collide with another node's ID while the tree is being edited.
type Node struct {
	Title string      // Display text (required on the wire)
	ID    int         // Wire id; 0 means not yet assigned
	Attr  *Attributes // Optional attributes (nil when absent)

	children []*Node
	handle   uuid.UUID
}

// NewNode creates a detached node with the given title and a fresh identity.
func NewNode(title string) *Node {
	return &Node{Title: title, handle: uuid.New()}
}

// Handle returns the node's identity handle.
// Nodes built as struct literals get a handle lazily on first use.
func (n *Node) Handle() uuid.UUID {
	if n.handle == uuid.Nil {
		n.handle = uuid.New()
	}
	return n.handle
}

// Children returns the ordered children. The returned slice must not be
// modified - use [Tree.Append] and [Tree.Remove] to change structure.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Append adds child as the last child of n. It is meant for assembling
// detached subtrees; once a node belongs to a [Tree], prefer [Tree.Append],
// which also verifies ownership across the whole tree.
//
// Returns ErrNilNode for a nil child and ErrCycle if child is n or contains n.
func (n *Node) Append(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	for s := range Walk(child) {
		if s.Node == n {
			return ErrCycle
		}
	}
	n.children = append(n.children, child)
	return nil
}

func (n *Node) removeChild(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	return true
}

func (n *Node) attrs() *Attributes {
	if n.Attr == nil {
		n.Attr = &Attributes{}
	}
	return n.Attr
}

// AddMeasure upserts a measurement. The value is stored as its string
// representation; other measurements of the node are left untouched.
func (n *Node) AddMeasure(name string, value any) {
	a := n.attrs()
	if a.Measurements == nil {
		a.Measurements = &Measurements{}
	}
	a.Measurements.Set(name, fmt.Sprint(value))
}

// Measure returns the value of a measurement.
func (n *Node) Measure(name string) (string, bool) {
	if n.Attr == nil {
		return "", false
	}
	return n.Attr.Measurements.Get(name)
}

// SetCollapsed stores the collapsed flag.
func (n *Node) SetCollapsed(collapsed bool) {
	n.attrs().Collapsed = &collapsed
}

// IsCollapsed reports whether the node is marked collapsed.
func (n *Node) IsCollapsed() bool {
	return n.Attr != nil && n.Attr.Collapsed != nil && *n.Attr.Collapsed
}

// SetColor sets the background color of the node.
func (n *Node) SetColor(color string) {
	a := n.attrs()
	if a.Style == nil {
		a.Style = &Style{}
	}
	a.Style.Background = color
}

// AddAttachment stores text as an HTML attachment. With appendExisting set
// and an attachment already present, the text is appended after a
// horizontal rule instead of replacing the previous content.
func (n *Node) AddAttachment(text string, appendExisting bool) {
	a := n.attrs()
	if a.Attachment != nil && appendExisting {
		text = a.Attachment.Content + attachmentSeparator + text
	}
	a.Attachment = &Attachment{ContentType: AttachmentContentType, Content: text}
}

// String returns "[id] title", with "?" for an unassigned id.
func (n *Node) String() string {
	if n.ID == 0 {
		return fmt.Sprintf("[?] %s", n.Title)
	}
	return fmt.Sprintf("[%d] %s", n.ID, n.Title)
}
