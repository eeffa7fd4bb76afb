// Package render draws idea trees as Graphviz diagrams.
//
// # Overview
//
// [ToDOT] turns a tree into Graphviz DOT source: every idea becomes a
// rounded box, parent/child edges are solid arrows and cross links are
// drawn with their own color and line style without affecting the layout.
// [RenderSVG] lays the DOT out in-process with go-graphviz.
//
//	dot := render.ToDOT(tree, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: labels include the idea id and its measurements
//   - HideCollapsed: children of collapsed ideas are left out, as the
//     MindMup editor shows them
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output with the external rsvg-convert
// tool from librsvg.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed for SVG output.
package render
