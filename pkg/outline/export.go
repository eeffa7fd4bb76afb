package outline

import (
	"fmt"

	"github.com/matzehuels/mindmup/pkg/idea"
)

// FromTree converts a tree to an outline. Ideas are keyed by title; when
// several ideas share a title, each of them is keyed "title#rank" where
// rank is its 1-based pre-order position. Links are kept when both
// endpoints are in the tree. Attachments are not exported.
func FromTree(t *idea.Tree) *Outline {
	counts := make(map[string]int)
	for s := range t.Walk() {
		counts[s.Node.Title]++
	}
	keys := make(map[*idea.Node]string)
	rank := 0
	for s := range t.Walk() {
		rank++
		key := s.Node.Title
		if counts[key] > 1 {
			key = fmt.Sprintf("%s#%d", key, rank)
		}
		keys[s.Node] = key
	}

	// The root is always addressed by the outline title; ideas sharing
	// its title carry ranked keys.
	keys[t.Root] = t.Root.Title

	o := &Outline{Title: t.Root.Title}
	o.Ideas = items(t.Root.Children(), keys)

	for _, l := range t.Links.All() {
		from, okFrom := keys[l.From]
		to, okTo := keys[l.To]
		if !okFrom || !okTo {
			continue
		}
		o.Links = append(o.Links, Link{
			From:      from,
			To:        to,
			Color:     l.Style.Color,
			LineStyle: l.Style.LineStyle,
		})
	}
	return o
}

func items(nodes []*idea.Node, keys map[*idea.Node]string) []Item {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Item, len(nodes))
	for i, n := range nodes {
		it := Item{Title: n.Title, Ideas: items(n.Children(), keys)}
		if k := keys[n]; k != n.Title {
			it.Key = k
		}
		if a := n.Attr; a != nil {
			if a.Style != nil {
				it.Color = a.Style.Background
			}
			if a.Collapsed != nil {
				v := *a.Collapsed
				it.Collapsed = &v
			}
			if a.Measurements.Len() > 0 {
				it.Measurements = make(map[string]any, a.Measurements.Len())
				for _, name := range a.Measurements.Names() {
					it.Measurements[name], _ = a.Measurements.Get(name)
				}
			}
		}
		out[i] = it
	}
	return out
}
