package mindmup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mindmup/pkg/idea"
)

// ReadJSON decodes a MindMup document from r.
//
// ReadJSON only parses JSON; structural checks and format version checks
// happen in [Decode]. It does not close r.
func ReadJSON(r io.Reader) (*Idea, error) {
	var doc Idea
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *Idea, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads the MindMup file at path and decodes it into a tree.
// Errors are wrapped with the file path.
func ImportJSON(path string) (*idea.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ExportJSON encodes t and writes it to a MindMup file at path.
func ExportJSON(t *idea.Tree, path string, opts EncodeOptions) error {
	doc, err := Encode(t, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Marshal encodes t to indented MindMup JSON.
func Marshal(t *idea.Tree, opts EncodeOptions) ([]byte, error) {
	doc, err := Encode(t, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses MindMup JSON and decodes it into a tree.
func Unmarshal(data []byte) (*idea.Tree, error) {
	doc, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}
