package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/pipeline"
)

type renderOpts struct {
	followsInput
	output    string
	format    string
	detailed  bool
	highlight int
	scale     float64
	noCache   bool
}

// renderCacheTTL bounds how long rendered diagrams stay on disk.
const renderCacheTTL = 7 * 24 * time.Hour

// renderCommand draws the follows graph as DOT, SVG, PNG or PDF.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the follows graph",
		Long: `Draw the follows graph as a node-link diagram. DOT and SVG are produced
in-process by graphviz; PNG and PDF additionally need rsvg-convert on PATH.
Rendered SVG, PNG and PDF output is cached under the user cache directory.

Without --format the format follows the extension of --output, or SVG.`,
		Example: `  followgraph render -f posts.json -o follows.svg
  followgraph render --graph graph.json --format dot --detailed --highlight 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; stdout if empty")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with follower and following counts")
	cmd.Flags().IntVar(&opts.highlight, "highlight", 0, "highlight the N most followed users")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk render cache")
	return cmd
}

// renderFormat picks the explicit format, else the output extension, else SVG.
func (o *renderOpts) renderFormat() string {
	if o.format != "" {
		return strings.ToLower(o.format)
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(o.output)), "."); pipeline.ValidFormats[ext] {
		return ext
	}
	return pipeline.FormatSVG
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	format := opts.renderFormat()
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	if opts.highlight < 0 {
		return errNegativeTop(opts.highlight)
	}

	g, err := opts.follows(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner := c.newRunner()
	if !opts.noCache {
		c.attachFileCache(ctx, runner)
	}

	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+format+"...")
	if format != pipeline.FormatDOT {
		spin.Start()
	}
	out, err := runner.Render(ctx, g, pipeline.RenderOptions{
		Format:    format,
		Detailed:  opts.detailed,
		Highlight: opts.highlight,
		Scale:     opts.scale,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	w, closeOut, err := createOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess(cmd.ErrOrStderr(), "Rendered %s", format)
		printFile(cmd.ErrOrStderr(), opts.output)
	}
	return nil
}

// attachFileCache gives runner the per-user render cache. Rendering works
// without it, so failures are only logged.
func (c *CLI) attachFileCache(ctx context.Context, runner *pipeline.Runner) {
	logger := loggerFromContext(ctx)
	dir, err := cache.DefaultDir()
	if err != nil {
		logger.Debug("render cache disabled", "err", err)
		return
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("render cache disabled", "dir", dir, "err", err)
		return
	}
	runner.Cache = fc
	runner.CacheTTL = renderCacheTTL
}
