package mindmup

import "encoding/json"

// Idea is one node of a MindMup document. The top-level Idea of a document
// is the root and additionally carries FormatVersion and Links.
type Idea struct {
	ID            int              `json:"id" validate:"gt=0"`
	Title         string           `json:"title"`
	FormatVersion int              `json:"formatVersion,omitempty"`
	Attr          *Attr            `json:"attr,omitempty"`
	Ideas         map[string]*Idea `json:"ideas,omitempty" validate:"dive,keys,rank,endkeys,required"`
	Links         []Link           `json:"links,omitempty" validate:"dive"`
}

// Attr is the attribute object of an idea.
//
// Measurements is kept raw so that a malformed value does not fail the
// whole document; it is parsed per idea during decoding.
type Attr struct {
	Collapsed          *bool           `json:"collapsed,omitempty"`
	Style              *Style          `json:"style,omitempty"`
	Attachment         *Attachment     `json:"attachment,omitempty"`
	Measurements       json.RawMessage `json:"measurements,omitempty"`
	MeasurementsConfig []string        `json:"measurements-config,omitempty"`
}

// Style is the visual style of an idea.
type Style struct {
	Color      string `json:"color,omitempty"`
	LineStyle  string `json:"lineStyle,omitempty"`
	Background string `json:"background,omitempty"`
}

// Attachment is rich content attached to an idea.
type Attachment struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Link is a cross link between two ideas, addressed by wire id.
type Link struct {
	IdeaIDFrom int       `json:"ideaIdFrom" validate:"gt=0"`
	IdeaIDTo   int       `json:"ideaIdTo" validate:"gt=0"`
	Attr       *LinkAttr `json:"attr,omitempty"`
}

// LinkAttr is the attribute object of a link.
type LinkAttr struct {
	Style *LinkStyle `json:"style,omitempty"`
}

// LinkStyle is the visual style of a link.
type LinkStyle struct {
	Color     string `json:"color,omitempty"`
	LineStyle string `json:"lineStyle,omitempty"`
}

// Count returns the number of ideas in the document rooted at d.
func (d *Idea) Count() int {
	if d == nil {
		return 0
	}
	n := 1
	for _, c := range d.Ideas {
		n += c.Count()
	}
	return n
}
