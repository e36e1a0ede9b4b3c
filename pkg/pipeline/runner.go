package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/observability"
	"github.com/matzehuels/followgraph/pkg/post"
	"github.com/matzehuels/followgraph/pkg/render"
	"github.com/matzehuels/followgraph/pkg/render/nodelink"
	"github.com/matzehuels/followgraph/pkg/social"
)

// Runner executes analysis and rendering. It holds no per-run state, so
// multiple goroutines can share one Runner.
type Runner struct {
	Logger *log.Logger

	// Hooks receives analysis events. Nil uses the globally registered hooks.
	Hooks observability.AnalysisHooks

	// RenderHooks receives render events. Nil uses the globally registered hooks.
	RenderHooks observability.RenderHooks

	// Cache holds SVG, PNG and PDF output keyed by graph and options.
	// Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

func (r *Runner) hooks() observability.AnalysisHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Analysis()
}

func (r *Runner) renderHooks() observability.RenderHooks {
	if r.RenderHooks != nil {
		return r.RenderHooks
	}
	return observability.Render()
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Analyze runs the filter → timespan → mentions → graph → rank pipeline.
// posts is not modified.
func (r *Runner) Analyze(ctx context.Context, posts []post.Post, opts Options) (result *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger()
	hooks := r.hooks()

	start := time.Now()
	hooks.OnAnalyzeStart(ctx, len(posts))
	defer func() {
		var users, edges int
		if result != nil {
			users, edges = result.Stats.UserCount, result.Stats.EdgeCount
		}
		hooks.OnAnalyzeComplete(ctx, users, edges, time.Since(start), err)
	}()

	result = &Result{Stats: Stats{PostCount: len(posts)}}

	// Stage 1: Filter
	filterStart := time.Now()
	kept := Filter(posts, opts)
	result.Stats.AnalyzedCount = len(kept)
	result.Stats.FilterTime = time.Since(filterStart)
	if opts.HasFilter() {
		logger.Debug("filtered posts", "kept", len(kept), "total", len(posts))
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	// Stage 2: Timespan and mentions
	result.Timespan, result.HasTimespan = post.GetTimespan(kept)
	result.Mentions = mention.ExtractAll(kept).Sorted()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mentions: %w", err)
	}

	// Stage 3: Graph
	graphStart := time.Now()
	result.Graph = social.Build(kept)
	result.Stats.UserCount = len(social.Users(result.Graph))
	result.Stats.EdgeCount = result.Graph.EdgeCount()
	result.Stats.GraphTime = time.Since(graphStart)
	logger.Info("built follows graph",
		"users", result.Stats.UserCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.GraphTime)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}

	// Stage 4: Rank
	rankStart := time.Now()
	result.Rankings = social.Top(social.Rankings(result.Graph), opts.Top)
	result.Stats.RankTime = time.Since(rankStart)
	logger.Debug("ranked users", "ranked", len(result.Rankings), "duration", result.Stats.RankTime)

	return result, nil
}

// Filter returns the posts matching opts, in their original order.
func Filter(posts []post.Post, opts Options) []post.Post {
	kept := posts
	if opts.Author != "" {
		kept = post.WrittenBy(kept, opts.Author)
	}
	if !opts.Since.IsZero() || !opts.Until.IsZero() {
		kept = post.InTimespan(kept, opts.window())
	}
	if len(opts.Words) > 0 {
		kept = post.Containing(kept, opts.Words)
	}
	if len(kept) == len(posts) {
		// The result never aliases posts.
		return append([]post.Post{}, posts...)
	}
	return kept
}

// Render draws g in the requested format.
// DOT and SVG are produced in-process; PNG and PDF need rsvg-convert.
func (r *Runner) Render(ctx context.Context, g social.FollowsGraph, opts RenderOptions) (out []byte, err error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	hooks := r.renderHooks()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Format, len(social.Users(g)))
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Format, len(out), time.Since(start), err)
	}()

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Highlight: opts.Highlight})
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	logger := r.logger()
	var key string
	if r.Cache != nil {
		key = renderKey(g, opts)
		data, hit, cerr := r.Cache.Get(ctx, key)
		if cerr != nil {
			logger.Warn("render cache read failed", "err", cerr)
		}
		if hit {
			logger.Debug("render cache hit", "format", opts.Format, "bytes", len(data))
			return data, nil
		}
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}

	switch opts.Format {
	case FormatPNG:
		out, err = render.ToPNG(ctx, svg, opts.Scale)
	case FormatPDF:
		out, err = render.ToPDF(ctx, svg)
	default:
		out = svg
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "convert to %s", opts.Format)
	}

	if r.Cache != nil {
		if cerr := r.Cache.Set(ctx, key, out, r.CacheTTL); cerr != nil {
			logger.Warn("render cache write failed", "err", cerr)
		}
	}

	logger.Debug("rendered graph", "format", opts.Format, "bytes", len(out), "duration", time.Since(start))
	return out, nil
}

// renderKey identifies a rendering by the normalized graph and the options
// that affect the output.
func renderKey(g social.FollowsGraph, opts RenderOptions) string {
	if opts.Format != FormatPNG {
		opts.Scale = 0
	} else if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return cache.Key("render", graph.FromFollows(g), opts)
}
