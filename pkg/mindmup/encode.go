package mindmup

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/matzehuels/mindmup/pkg/idea"
)

func (c *Codec) encode(t *idea.Tree, opts EncodeOptions) (*Idea, error) {
	if t == nil || t.Root == nil {
		return nil, idea.ErrNilNode
	}

	t.RecomputeMeasurements()
	ids, err := t.AssignIDs(opts.AutoIncrement, idea.Strict)
	if err != nil {
		return nil, err
	}

	doc, err := encodeIdea(t.Root)
	if err != nil {
		return nil, err
	}

	resolved, err := t.Links.Resolve(ids)
	if err != nil {
		return nil, err
	}
	doc.Links = encodeLinks(resolved)

	doc.FormatVersion = t.FormatVersion
	if doc.FormatVersion == 0 {
		doc.FormatVersion = idea.FormatVersion
	}
	if len(t.MeasurementsConfig) > 0 {
		if doc.Attr == nil {
			doc.Attr = &Attr{}
		}
		doc.Attr.MeasurementsConfig = slices.Clone(t.MeasurementsConfig)
	}
	return doc, nil
}

func encodeIdea(n *idea.Node) (*Idea, error) {
	if n.IsLeaf() {
		n.SetCollapsed(false)
	}

	attr, err := encodeAttr(n.Attr)
	if err != nil {
		return nil, fmt.Errorf("idea %d: %w", n.ID, err)
	}
	w := &Idea{ID: n.ID, Title: n.Title, Attr: attr}

	children := n.Children()
	if len(children) == 0 {
		return w, nil
	}
	w.Ideas = make(map[string]*Idea, len(children))
	for i, child := range children {
		cw, err := encodeIdea(child)
		if err != nil {
			return nil, err
		}
		w.Ideas[strconv.Itoa(i+1)] = cw
	}
	return w, nil
}

func encodeAttr(a *idea.Attributes) (*Attr, error) {
	if a == nil {
		return nil, nil
	}
	w := &Attr{}
	if a.Collapsed != nil {
		v := *a.Collapsed
		w.Collapsed = &v
	}
	if a.Style != nil {
		w.Style = &Style{Color: a.Style.Color, LineStyle: a.Style.LineStyle, Background: a.Style.Background}
	}
	if a.Attachment != nil {
		w.Attachment = &Attachment{ContentType: a.Attachment.ContentType, Content: a.Attachment.Content}
	}
	if a.Measurements.Len() > 0 {
		raw, err := json.Marshal(a.Measurements)
		if err != nil {
			return nil, fmt.Errorf("measurements: %w", err)
		}
		w.Measurements = raw
	}
	return w, nil
}

func encodeLinks(resolved []idea.ResolvedLink) []Link {
	if len(resolved) == 0 {
		return nil
	}
	out := make([]Link, len(resolved))
	for i, l := range resolved {
		out[i] = Link{
			IdeaIDFrom: l.FromID,
			IdeaIDTo:   l.ToID,
			Attr: &LinkAttr{Style: &LinkStyle{
				Color:     l.Style.Color,
				LineStyle: l.Style.LineStyle,
			}},
		}
	}
	return out
}
