package mindmup

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/mindmup/pkg/idea"
)

func (c *Codec) decode(doc *Idea) (*idea.Tree, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if doc.FormatVersion != idea.FormatVersion {
		return nil, &UnsupportedFormatVersionError{Version: doc.FormatVersion}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	if doc.ID != idea.RootID {
		return nil, fmt.Errorf("%w: root id %d, want %d", ErrInvalidDocument, doc.ID, idea.RootID)
	}

	root, err := c.decodeIdea(doc)
	if err != nil {
		return nil, err
	}

	t := idea.NewTreeFromRoot(root)
	t.FormatVersion = doc.FormatVersion
	policy := idea.Strict
	if c.Lenient {
		policy = idea.Lenient
	}
	ids, err := t.AssignIDs(false, policy)
	if err != nil {
		return nil, err
	}
	t.RecomputeMeasurements()

	if err := t.Links.Rebuild(decodeLinks(doc.Links), ids); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Codec) decodeIdea(w *Idea) (*idea.Node, error) {
	ranks, err := sortedRanks(w.Ideas)
	if err != nil {
		return nil, fmt.Errorf("idea %d: %w", w.ID, err)
	}

	n := idea.NewNode(w.Title)
	n.ID = w.ID
	c.decodeAttr(n, w.Attr)

	for _, r := range ranks {
		child, err := c.decodeIdea(w.Ideas[r])
		if err != nil {
			return nil, err
		}
		if err := n.Append(child); err != nil {
			return nil, fmt.Errorf("idea %d: %w", w.ID, err)
		}
	}
	return n, nil
}

// sortedRanks returns the keys of a child map in ascending numeric order.
// Keys that compare equal numerically ("1" and "1.0") keep a stable order
// by their text.
func sortedRanks(ideas map[string]*Idea) ([]string, error) {
	type rank struct {
		key string
		pos float64
	}
	rs := make([]rank, 0, len(ideas))
	for k := range ideas {
		pos, ok := parseRank(k)
		if !ok {
			return nil, fmt.Errorf("%w: rank %q is not a finite number", ErrInvalidDocument, k)
		}
		rs = append(rs, rank{key: k, pos: pos})
	}
	slices.SortFunc(rs, func(a, b rank) int {
		return cmp.Or(cmp.Compare(a.pos, b.pos), strings.Compare(a.key, b.key))
	})
	keys := make([]string, len(rs))
	for i, r := range rs {
		keys[i] = r.key
	}
	return keys, nil
}

func (c *Codec) decodeAttr(n *idea.Node, w *Attr) {
	if w == nil {
		return
	}
	a := &idea.Attributes{}
	if w.Collapsed != nil {
		v := *w.Collapsed
		a.Collapsed = &v
	}
	if w.Style != nil {
		a.Style = &idea.Style{Color: w.Style.Color, LineStyle: w.Style.LineStyle, Background: w.Style.Background}
	}
	if w.Attachment != nil {
		a.Attachment = &idea.Attachment{ContentType: w.Attachment.ContentType, Content: w.Attachment.Content}
	}
	n.Attr = a

	if len(w.Measurements) == 0 {
		return
	}
	var m idea.Measurements
	if err := json.Unmarshal(w.Measurements, &m); err != nil {
		c.logger().Debug("ignoring malformed measurements", "idea", n.ID, "title", n.Title, "err", err)
		return
	}
	for _, name := range m.Names() {
		v, _ := m.Get(name)
		n.AddMeasure(name, v)
	}
}

func decodeLinks(links []Link) []idea.ResolvedLink {
	out := make([]idea.ResolvedLink, len(links))
	for i, l := range links {
		out[i] = idea.ResolvedLink{FromID: l.IdeaIDFrom, ToID: l.IdeaIDTo}
		if l.Attr != nil && l.Attr.Style != nil {
			out[i].Style = idea.LinkStyle{Color: l.Attr.Style.Color, LineStyle: l.Attr.Style.LineStyle}
		}
	}
	return out
}
