// Package pkg provides the core libraries for followgraph mention analysis.
//
// # Overview
//
// followgraph reads short text posts, extracts their @-mentions, and infers a
// "follows" graph: the author of a post follows everyone the post mentions.
// Users are then ranked by how many others follow them. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [mention], [post], [social], [quadratic]
//  2. Formats: [io] (posts), [graph] (node-link JSON), [render] (DOT, SVG, PNG, PDF)
//  3. Orchestration: [pipeline], with [observability] hooks and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	posts.json / posts.toml
//	         ↓
//	    [io] package (decode + validate posts)
//	         ↓
//	    [post] package (filter by author, time, words)
//	         ↓
//	    [mention] + [social] packages (extract mentions, build graph, rank)
//	         ↓
//	    [graph] / [render] packages (JSON, DOT, SVG, PNG, PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/followgraph/pkg/io"
//	    "github.com/matzehuels/followgraph/pkg/social"
//	)
//
//	posts, _ := io.ImportPosts("posts.json")
//	g := social.Build(posts)
//	for _, r := range social.Top(social.Rankings(g), 10) {
//	    fmt.Println(r.Username, r.Followers)
//	}
//
// Or run every step at once with [pipeline.Runner.Analyze].
//
// # Usernames
//
// Usernames are ASCII letters, digits, underscores and hyphens, compared
// case-insensitively. Every map and set key is the canonical uppercase form
// produced by [mention.Canonical].
package pkg
