package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmup/pkg/idea"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the idea id and measurements to node labels.
	Detailed bool

	// HideCollapsed omits the descendants of collapsed ideas.
	HideCollapsed bool
}

// ToDOT converts a tree to Graphviz DOT. Nodes are named by pre-order
// rank ("n1" is the root), so the output does not depend on wire ids and
// works for trees that were never numbered. Links whose endpoints are
// hidden or outside the tree are skipped.
func ToDOT(t *idea.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	names := make(map[*idea.Node]string)
	var edges []string
	var visit func(n *idea.Node)
	visit = func(n *idea.Node) {
		name := "n" + strconv.Itoa(len(names)+1)
		names[n] = name
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		if opts.HideCollapsed && n.IsCollapsed() {
			return
		}
		for _, c := range n.Children() {
			visit(c)
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", name, names[c]))
		}
	}
	if t.Root != nil {
		visit(t.Root)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	for _, l := range t.Links.All() {
		from, okFrom := names[l.From]
		to, okTo := names[l.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [style=%s, color=%q, constraint=false];\n",
			from, to, edgeStyle(l.Style.LineStyle), l.Style.Color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *idea.Node, detailed bool) string {
	if !detailed {
		return n.Title
	}
	parts := []string{n.String()}
	if m := n.Attr; m != nil {
		for _, name := range m.Measurements.Names() {
			v, _ := m.Measurements.Get(name)
			parts = append(parts, fmt.Sprintf("%s: %s", name, v))
		}
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *idea.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if a := n.Attr; a != nil && a.Style != nil && a.Style.Background != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", a.Style.Background))
	}
	if n.IsCollapsed() && !n.IsLeaf() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func edgeStyle(lineStyle string) string {
	if lineStyle == "solid" {
		return "solid"
	}
	return "dashed"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized <svg> tag with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
