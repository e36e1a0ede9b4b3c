// Package nodelink renders follows graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// users appear as boxes and an arrow from A to B means A follows B.
//
// # Usage
//
// Convert a follows graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true, Highlight: 3})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pass the SVG to the render package.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include follower and following counts
//   - Highlight: the top N influencers are filled in a highlight color
//
// # DOT Format
//
// [ToDOT] output is deterministic: nodes in username order, edges sorted by
// (from, to). It can be rendered via [RenderSVG] or saved and processed with
// external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
