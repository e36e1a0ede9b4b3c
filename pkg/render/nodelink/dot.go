package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/followgraph/pkg/social"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes follower and following counts in node labels.
	// When false, only the username is shown.
	Detailed bool

	// Highlight fills the top N influencers. Zero highlights none.
	Highlight int
}

// ToDOT converts a follows graph to Graphviz DOT format.
// Every user in [social.Users] becomes a node. The resulting DOT string can be
// rendered using [RenderSVG].
func ToDOT(g social.FollowsGraph, opts Options) string {
	g = social.Normalize(g)
	followers := social.Followers(g)

	highlighted := make(map[string]bool)
	if opts.Highlight > 0 {
		for _, r := range social.Top(social.Rankings(g), opts.Highlight) {
			highlighted[r.Username] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range social.Users(g) {
		label := fmtLabel(id, followers[id], g[id].Len(), opts.Detailed)
		attrs := fmtAttrs(label, highlighted[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, from := range social.Mentioners(g) {
		for _, to := range g[from].Sorted() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, followers, following int, detailed bool) string {
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\nfollowers: %d\nfollowing: %d", id, followers, following)
}

func fmtAttrs(label string, highlight bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if highlight {
		attrs = append(attrs, "fillcolor=\"#b3e5fc\"", "penwidth=2")
	}
	return attrs
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

// normalizeViewBox rewrites the root tag so the viewBox starts at the origin
// and width/height match it, letting the SVG scale cleanly in browsers.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
