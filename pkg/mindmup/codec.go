package mindmup

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/observability"
)

// EncodeOptions controls [Codec.Encode].
type EncodeOptions struct {
	// AutoIncrement renumbers every idea 1..N in pre-order before encoding.
	// When false, existing ids are kept and only unassigned ideas receive
	// fresh ids; a repeated id fails the encode.
	AutoIncrement bool
}

// Codec converts between idea trees and MindMup wire documents.
// The zero value is ready to use and logs through log.Default.
type Codec struct {
	Logger *log.Logger

	// Lenient lets Decode accept repeated ids. Later occurrences keep their
	// wire id and are listed under an alias in the tree's id table; links
	// naming a repeated id attach to its first occurrence.
	Lenient bool
}

// New returns a codec logging to logger.
func New(logger *log.Logger) *Codec {
	return &Codec{Logger: logger}
}

var defaultCodec = &Codec{}

// Encode converts t to a wire document using a default codec.
func Encode(t *idea.Tree, opts EncodeOptions) (*Idea, error) {
	return defaultCodec.Encode(context.Background(), t, opts)
}

// Decode converts a wire document to a tree using a default codec.
func Decode(doc *Idea) (*idea.Tree, error) {
	return defaultCodec.Decode(context.Background(), doc)
}

func (c *Codec) logger() *log.Logger {
	if c == nil || c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// Encode converts t to a wire document.
//
// Encoding recomputes the measurements config, numbers the tree in strict
// mode, serializes every idea with its children keyed by 1-based rank and
// resolves the identity-keyed links to wire ids. Ideas without children
// are stored with collapsed set to false, on the tree as well as in the
// document.
//
// Errors: *idea.DuplicateIDError when AutoIncrement is false and two ideas
// share an id; *idea.LinkEndpointNotFoundError when a link points at an
// idea outside the tree.
func (c *Codec) Encode(ctx context.Context, t *idea.Tree, opts EncodeOptions) (*Idea, error) {
	start := time.Now()
	doc, err := c.encode(t, opts)
	nodes, links := doc.Count(), 0
	if doc != nil {
		links = len(doc.Links)
	}
	observability.Codec().OnEncode(ctx, nodes, links, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("encoded map", "title", doc.Title, "ideas", nodes, "links", links)
	return doc, nil
}

// Decode converts a wire document to a tree.
//
// The document must carry formatVersion 2 and pass [Validate]. Children are
// appended in ascending numeric rank order. Ids are taken from the document
// as-is; unless the codec is lenient, a repeated id fails with
// *idea.DuplicateIDError. A link to an
// unknown id with *idea.LinkEndpointNotFoundError. Malformed measurements
// are logged at debug level and otherwise ignored.
//
// The returned tree's id table reflects the decoded ids, so it can be
// re-encoded without renumbering.
func (c *Codec) Decode(ctx context.Context, doc *Idea) (*idea.Tree, error) {
	start := time.Now()
	t, err := c.decode(doc)
	nodes, links := 0, 0
	if t != nil {
		nodes, links = t.Len(), t.Links.Len()
	}
	observability.Codec().OnDecode(ctx, nodes, links, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("decoded map", "title", t.Root.Title, "ideas", nodes, "links", links)
	return t, nil
}
