// Package pipeline provides the analysis pipeline shared by the CLI and the
// HTTP server.
//
// This package runs the filter → timespan → mentions → graph → rank sequence
// over a batch of posts, and renders follows graphs to diagram formats. By
// centralizing this logic, every entry point reports the same numbers for the
// same input.
//
// # Architecture
//
// [Runner.Analyze] runs these stages:
//
//  1. Filter: keep posts matching [Options] (author, time window, words)
//  2. Timespan: the smallest span containing every kept post
//  3. Mentions: the distinct users mentioned in kept posts
//  4. Graph: the follows graph inferred from kept posts
//  5. Rank: users ordered by follower count, capped at [Options.Top]
//
// The context is checked between stages, so a cancelled request stops early.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Analyze(ctx, posts, pipeline.Options{Top: 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range result.Rankings {
//	    fmt.Println(r.Username, r.Followers)
//	}
//
// Render a graph:
//
//	svg, err := runner.Render(ctx, result.Graph, pipeline.RenderOptions{Format: pipeline.FormatSVG})
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/post"
	"github.com/matzehuels/followgraph/pkg/social"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultTop is the number of rankings shown when the caller doesn't say.
const DefaultTop = 10

// Format constants for rendered outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Analysis Configuration
// =============================================================================

// Options selects which posts are analyzed and how much is reported.
// The zero value analyzes every post and returns every ranking.
type Options struct {
	// Author keeps only posts by this author, ignoring case.
	Author string `json:"author,omitempty"`

	// Since and Until bound the post timestamps, inclusive.
	// A zero value leaves that side unbounded.
	Since time.Time `json:"since,omitzero"`
	Until time.Time `json:"until,omitzero"`

	// Words keeps only posts containing at least one of these words.
	Words []string `json:"words,omitempty"`

	// Top caps the number of rankings returned. Zero means all.
	Top int `json:"top,omitempty"`
}

// Validate checks option values and drops blank words.
func (o *Options) Validate() error {
	if o.Top < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top must not be negative, got %d", o.Top)
	}
	if !o.Since.IsZero() && !o.Until.IsZero() && o.Since.After(o.Until) {
		return errors.New(errors.ErrCodeInvalidTimespan, "since %s is after until %s",
			o.Since.Format(time.RFC3339), o.Until.Format(time.RFC3339))
	}
	o.Author = strings.TrimSpace(o.Author)

	var words []string
	for _, w := range o.Words {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	o.Words = words
	return nil
}

// HasFilter reports whether any post filter is set.
func (o *Options) HasFilter() bool {
	return o.Author != "" || !o.Since.IsZero() || !o.Until.IsZero() || len(o.Words) > 0
}

// window returns the time bounds as a Timespan, filling open sides with the
// extremes of representable time.
func (o *Options) window() post.Timespan {
	span := post.Timespan{Start: o.Since, End: o.Until}
	if span.End.IsZero() {
		span.End = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	}
	return span
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format    string  `json:"format"`
	Detailed  bool    `json:"detailed,omitempty"`
	Highlight int     `json:"highlight,omitempty"`
	Scale     float64 `json:"scale,omitempty"` // PNG only
}

// =============================================================================
// Result - Analysis Output
// =============================================================================

// Result contains the outputs of an analysis run.
type Result struct {
	// Timespan covers the analyzed posts. Meaningful only when HasTimespan.
	Timespan    post.Timespan `json:"timespan"`
	HasTimespan bool          `json:"has_timespan"`

	// Mentions lists every mentioned user, sorted.
	Mentions []string `json:"mentions"`

	// Graph is the inferred follows graph.
	Graph social.FollowsGraph `json:"-"`

	// Rankings lists users by descending follower count.
	Rankings []social.Ranking `json:"rankings"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PostCount     int           `json:"posts"`
	AnalyzedCount int           `json:"analyzed"`
	UserCount     int           `json:"users"`
	EdgeCount     int           `json:"edges"`
	FilterTime    time.Duration `json:"filter_ns"`
	GraphTime     time.Duration `json:"graph_ns"`
	RankTime      time.Duration `json:"rank_ns"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// ParseWords splits a comma-separated word list, as given on the command line
// or in a query string.
func ParseWords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseTime accepts RFC 3339 timestamps or plain dates (YYYY-MM-DD, UTC).
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC 3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
