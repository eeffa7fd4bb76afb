package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmup/pkg/cache"
	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"

	defaultPNGScale = 2.0
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string   // output file (single format) or base path (multiple)
	formats       []string // output formats: "dot", "svg", "pdf", "png"
	detailed      bool     // add ids and measurements to node labels
	hideCollapsed bool     // omit descendants of collapsed ideas
	scale         float64  // PNG scale factor
	noCache       bool     // bypass the render cache
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a map to DOT, SVG, PDF or PNG",
		Long: `Render a map through Graphviz.

SVG output is cached by document content and render options. PDF and PNG are
converted from the SVG with rsvg-convert, which must be installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and measurements in labels")
	cmd.Flags().BoolVar(&opts.hideCollapsed, "hide-collapsed", false, "omit children of collapsed ideas")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	t, err := c.decodeMap(ctx, input, data)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d ideas, %d links", input, t.Len(), t.Links.Len())

	ch, err := c.newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer ch.Close()

	r := &renderer{
		tree:  t,
		hash:  cache.Hash(data),
		opts:  opts,
		cache: ch,
		keyer: cache.NewDefaultKeyer(),
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		out, cached, err := r.render(ctx, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		path := base + "." + format
		switch {
		case len(opts.formats) == 1 && opts.output != "":
			path = opts.output
		case base == stdio:
			path = stdio
		}
		if err := writeOutput(path, out, cmd.OutOrStdout()); err != nil {
			return err
		}
		if path == stdio {
			continue
		}
		printSuccess("Rendered %s", format)
		printStats(t.Len(), t.Links.Len(), cached)
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %s", input))
	return nil
}

// renderer produces one map in several formats, sharing the SVG between
// the SVG, PDF and PNG outputs.
type renderer struct {
	tree  *idea.Tree
	hash  string
	opts  *renderOpts
	cache cache.Cache
	keyer cache.Keyer
}

func (r *renderer) options() render.Options {
	return render.Options{Detailed: r.opts.detailed, HideCollapsed: r.opts.hideCollapsed}
}

func (r *renderer) key(format string) string {
	return r.keyer.RenderKey(r.hash, cache.RenderKeyOpts{
		Format:        format,
		Detailed:      r.opts.detailed,
		HideCollapsed: r.opts.hideCollapsed,
	})
}

// render returns the map in format and whether it came from the cache.
func (r *renderer) render(ctx context.Context, format string) ([]byte, bool, error) {
	if format == formatDOT {
		return []byte(render.ToDOT(r.tree, r.options())), false, nil
	}

	key := r.key(format)
	if format == formatPNG {
		key = cache.Key(key, r.opts.scale)
	}
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case formatSVG:
		spinner := newSpinnerWithContext(ctx, "Running Graphviz...")
		spinner.Start()
		data, err = render.RenderSVG(ctx, render.ToDOT(r.tree, r.options()))
		spinner.Stop()
	case formatPDF, formatPNG:
		var svg []byte
		if svg, _, err = r.render(ctx, formatSVG); err != nil {
			return nil, false, err
		}
		if format == formatPDF {
			data, err = render.ToPDF(ctx, svg)
		} else {
			data, err = render.ToPNG(ctx, svg, r.opts.scale)
		}
	}
	if errors.Is(err, render.ErrConverterMissing) {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeUnsupported, err, "%s output needs librsvg (brew install librsvg, apt install librsvg2-bin)", format)
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(ctx, key, data, 0); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "error", err)
	}
	return data, false, nil
}
