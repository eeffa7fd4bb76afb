package idea

import (
	"slices"

	"github.com/google/uuid"
)

// Default link style values.
const (
	DefaultLinkColor     = "#FF0000"
	DefaultLinkLineStyle = "dashed"
)

// LinkStyle is the visual style of a cross link.
type LinkStyle struct {
	Color     string
	LineStyle string
}

// DefaultLinkStyle returns the style applied when no override is given.
func DefaultLinkStyle() LinkStyle {
	return LinkStyle{Color: DefaultLinkColor, LineStyle: DefaultLinkLineStyle}
}

// merge returns base with every non-empty field of overrides applied.
func (s LinkStyle) merge(overrides LinkStyle) LinkStyle {
	if overrides.Color != "" {
		s.Color = overrides.Color
	}
	if overrides.LineStyle != "" {
		s.LineStyle = overrides.LineStyle
	}
	return s
}

// Link is an identity-keyed edge between two ideas.
type Link struct {
	From  *Node
	To    *Node
	Style LinkStyle
}

// ResolvedLink is a link expressed with wire ids.
type ResolvedLink struct {
	FromID int
	ToID   int
	Style  LinkStyle
}

type linkKey struct {
	from, to uuid.UUID
}

// LinkRegistry stores cross links keyed by the identity of their endpoints,
// so links survive id renumbering while the tree is edited. Ids are only
// looked up at the wire boundary ([LinkRegistry.Resolve] and
// [LinkRegistry.Rebuild]).
//
// Links are kept in insertion order; replacing a link keeps its position.
type LinkRegistry struct {
	entries map[linkKey]*Link
	order   []linkKey
}

// NewLinkRegistry creates an empty registry.
func NewLinkRegistry() *LinkRegistry {
	return &LinkRegistry{entries: make(map[linkKey]*Link)}
}

func keyOf(from, to *Node) linkKey {
	return linkKey{from: from.Handle(), to: to.Handle()}
}

// Add inserts or replaces the link from→to. Non-empty fields of overrides
// are merged over [DefaultLinkStyle].
func (r *LinkRegistry) Add(from, to *Node, overrides LinkStyle) error {
	if from == nil || to == nil {
		return ErrNilNode
	}
	r.put(from, to, DefaultLinkStyle().merge(overrides))
	return nil
}

func (r *LinkRegistry) put(from, to *Node, style LinkStyle) {
	k := keyOf(from, to)
	if l, ok := r.entries[k]; ok {
		l.Style = style
		return
	}
	r.entries[k] = &Link{From: from, To: to, Style: style}
	r.order = append(r.order, k)
}

// Remove deletes the link from→to. A missing link is not an error.
func (r *LinkRegistry) Remove(from, to *Node) {
	if from == nil || to == nil {
		return
	}
	r.delete(keyOf(from, to))
}

func (r *LinkRegistry) delete(k linkKey) {
	if _, ok := r.entries[k]; !ok {
		return
	}
	delete(r.entries, k)
	r.order = slices.DeleteFunc(r.order, func(o linkKey) bool { return o == k })
}

// RemoveNode deletes every link with n as either endpoint.
func (r *LinkRegistry) RemoveNode(n *Node) {
	if n == nil {
		return
	}
	h := n.Handle()
	for _, k := range slices.Clone(r.order) {
		if k.from == h || k.to == h {
			r.delete(k)
		}
	}
}

// Get returns the link from→to.
func (r *LinkRegistry) Get(from, to *Node) (Link, bool) {
	if from == nil || to == nil {
		return Link{}, false
	}
	l, ok := r.entries[keyOf(from, to)]
	if !ok {
		return Link{}, false
	}
	return *l, true
}

// Len returns the number of links.
func (r *LinkRegistry) Len() int { return len(r.order) }

// All returns a copy of every link in insertion order.
func (r *LinkRegistry) All() []Link {
	out := make([]Link, len(r.order))
	for i, k := range r.order {
		out[i] = *r.entries[k]
	}
	return out
}

// Resolve translates every link into wire ids using ids, which must come
// from a numbering performed after the last structural edit. It returns a
// *LinkEndpointNotFoundError if an endpoint is not part of that numbering.
func (r *LinkRegistry) Resolve(ids *IDTable) ([]ResolvedLink, error) {
	out := make([]ResolvedLink, 0, len(r.order))
	for _, k := range r.order {
		l := r.entries[k]
		from, ok := ids.ID(l.From)
		if !ok {
			return nil, &LinkEndpointNotFoundError{ID: l.From.ID, Title: l.From.Title}
		}
		to, ok := ids.ID(l.To)
		if !ok {
			return nil, &LinkEndpointNotFoundError{ID: l.To.ID, Title: l.To.Title}
		}
		out = append(out, ResolvedLink{FromID: from, ToID: to, Style: l.Style})
	}
	return out, nil
}

// Rebuild inserts wire links into the registry, resolving ids through ids.
// Existing entries for the same pair are overwritten. Empty style fields
// fall back to the defaults. A *LinkEndpointNotFoundError is returned for
// the first id missing from the table.
func (r *LinkRegistry) Rebuild(links []ResolvedLink, ids *IDTable) error {
	for _, l := range links {
		from, ok := ids.Node(l.FromID)
		if !ok {
			return &LinkEndpointNotFoundError{ID: l.FromID}
		}
		to, ok := ids.Node(l.ToID)
		if !ok {
			return &LinkEndpointNotFoundError{ID: l.ToID}
		}
		r.put(from, to, DefaultLinkStyle().merge(l.Style))
	}
	return nil
}
