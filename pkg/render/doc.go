// Package render converts rendered graphs between image formats.
//
// The [nodelink] subpackage turns follows graphs into Graphviz DOT and SVG.
// This package converts that SVG to PDF or PNG using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Available] reports whether rsvg-convert is installed, so callers can fail
// early with an actionable message.
package render
