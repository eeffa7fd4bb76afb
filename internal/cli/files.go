package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/mindmup"
)

// stdio is the path naming standard input or output.
const stdio = "-"

// readInput reads path, or stdin for "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(stdin)
	}
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout for "" and "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == stdio {
		_, err := stdout.Write(data)
		return err
	}
	if err := apperrors.ValidatePath(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// decodeMap parses and decodes a wire document. Failures carry the
// document's error code and are prefixed with source.
func (c *CLI) decodeMap(ctx context.Context, source string, data []byte) (*idea.Tree, error) {
	doc, err := mindmup.ReadJSON(bytes.NewReader(data))
	if err == nil {
		var t *idea.Tree
		if t, err = c.codec().Decode(ctx, doc); err == nil {
			return t, nil
		}
	}
	return nil, apperrors.Wrap(mindmup.Code(err), err, "%s", source)
}

// readMap reads and decodes the map at path ("-" for stdin).
func (c *CLI) readMap(ctx context.Context, path string, stdin io.Reader) (*idea.Tree, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(mindmup.Code(err), err, "read %s", path)
	}
	return c.decodeMap(ctx, path, data)
}

// encodeMap encodes t as indented wire JSON.
func (c *CLI) encodeMap(ctx context.Context, t *idea.Tree, opts mindmup.EncodeOptions) ([]byte, error) {
	doc, err := c.codec().Encode(ctx, t, opts)
	if err != nil {
		return nil, apperrors.Wrap(mindmup.Code(err), err, "encode %q", t.Root.Title)
	}
	var buf bytes.Buffer
	if err := mindmup.WriteJSON(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// outputPath derives "<input base>.<ext>" when no output was given.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	if input == stdio {
		return stdio
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}
