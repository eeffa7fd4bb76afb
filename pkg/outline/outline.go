package outline

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/attach"
	"github.com/matzehuels/mindmup/pkg/idea"
)

var (
	// ErrMissingTitle is returned for an outline or idea without a title.
	ErrMissingTitle = errors.New("missing title")

	// ErrUnknownField is returned for keys the outline format does not define.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownKey is returned for a link endpoint no idea is keyed by.
	ErrUnknownKey = errors.New("unknown key")

	// ErrAmbiguousKey is returned for a link endpoint whose key is used by
	// ideas under different parents.
	ErrAmbiguousKey = errors.New("ambiguous key")
)

// Outline is the TOML form of a mind map.
type Outline struct {
	Title string `toml:"title"`
	Ideas []Item `toml:"idea"`
	Links []Link `toml:"link"`
}

// Item is one idea of an outline.
type Item struct {
	Title        string         `toml:"title"`
	Key          string         `toml:"key,omitempty"`
	Color        string         `toml:"color,omitempty"`
	Collapsed    *bool          `toml:"collapsed,omitempty"`
	Note         string         `toml:"note,omitempty"`
	Measurements map[string]any `toml:"measurements,omitempty"`
	Table        map[string]any `toml:"table,omitempty"`
	Ideas        []Item         `toml:"idea,omitempty"`
}

// Link is a cross link between two keyed ideas.
type Link struct {
	From      string `toml:"from"`
	To        string `toml:"to"`
	Color     string `toml:"color,omitempty"`
	LineStyle string `toml:"line_style,omitempty"`
}

// Parse decodes an outline from TOML text. Keys not defined by the format
// are rejected so typos do not silently drop data.
func Parse(data string) (*Outline, error) {
	var o Outline
	md, err := toml.Decode(data, &o)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, undecoded[0])
	}
	return &o, nil
}

// Read decodes an outline from r.
func Read(r io.Reader) (*Outline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(string(data))
}

// Write encodes o as TOML to w.
func Write(o *Outline, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(o); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Build creates an idea tree from the outline.
//
// Ideas are created through each parent's [idea.SharedNodes] keyed by Key
// (defaulting to Title), so repeating a key under one parent merges the
// entries into one idea: later titles, colors and flags win, measurements
// and children accumulate. Measurements are added in name order.
//
// The root can be linked by the outline title.
func (o *Outline) Build() (*idea.Tree, error) {
	if o.Title == "" {
		return nil, fmt.Errorf("outline: %w", ErrMissingTitle)
	}
	b := &builder{
		tree: idea.NewTree(o.Title),
		keys: make(map[string][]*idea.Node),
	}
	b.keys[o.Title] = []*idea.Node{b.tree.Root}

	if err := b.addItems(b.tree.Root, o.Ideas, o.Title); err != nil {
		return nil, err
	}
	for i, l := range o.Links {
		if err := b.addLink(l); err != nil {
			return nil, fmt.Errorf("link %d: %w", i+1, err)
		}
	}
	return b.tree, nil
}

type builder struct {
	tree *idea.Tree
	keys map[string][]*idea.Node
}

func (b *builder) addItems(parent *idea.Node, items []Item, path string) error {
	if len(items) == 0 {
		return nil
	}
	shared, err := b.tree.Shared(parent)
	if err != nil {
		return err
	}
	shared.New = idea.NewNode

	for _, it := range items {
		key := cmp.Or(it.Key, it.Title)
		if key == "" {
			return fmt.Errorf("%s: idea %w", path, ErrMissingTitle)
		}
		existed := shared.Contains(key)
		n, err := shared.Node(key)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", path, key, err)
		}
		if !existed {
			b.keys[key] = append(b.keys[key], n)
		}
		if err := apply(n, it); err != nil {
			return fmt.Errorf("%s/%s: %w", path, key, err)
		}
		if err := b.addItems(n, it.Ideas, path+"/"+key); err != nil {
			return err
		}
	}
	return nil
}

func apply(n *idea.Node, it Item) error {
	if it.Title != "" {
		n.Title = it.Title
	}
	if it.Color != "" {
		if err := apperrors.ValidateColor(it.Color); err != nil {
			return err
		}
		n.SetColor(it.Color)
	}
	if it.Collapsed != nil {
		n.SetCollapsed(*it.Collapsed)
	}
	for _, name := range slices.Sorted(maps.Keys(it.Measurements)) {
		n.AddMeasure(name, it.Measurements[name])
	}
	if it.Note != "" {
		n.AddAttachment(it.Note, true)
	}
	if len(it.Table) > 0 {
		n.AddAttachment(attach.HTMLTable(it.Table, attach.Options{Caption: n.Title}), true)
	}
	return nil
}

func (b *builder) addLink(l Link) error {
	from, err := b.lookup(l.From)
	if err != nil {
		return err
	}
	to, err := b.lookup(l.To)
	if err != nil {
		return err
	}
	if err := apperrors.ValidateColor(l.Color); err != nil {
		return err
	}
	if err := apperrors.ValidateLineStyle(l.LineStyle); err != nil {
		return err
	}
	return b.tree.Links.Add(from, to, idea.LinkStyle{Color: l.Color, LineStyle: l.LineStyle})
}

func (b *builder) lookup(key string) (*idea.Node, error) {
	switch nodes := b.keys[key]; len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%w: %q names %d ideas", ErrAmbiguousKey, key, len(nodes))
	}
}
