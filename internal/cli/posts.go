package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	pio "github.com/matzehuels/followgraph/pkg/io"
	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/pipeline"
	"github.com/matzehuels/followgraph/pkg/post"
)

// =============================================================================
// mentions
// =============================================================================

type mentionsOpts struct {
	postsInput
	json bool
}

// mentionsCommand lists the users mentioned in text arguments, or in every
// post of a posts file when no text is given.
func (c *CLI) mentionsCommand() *cobra.Command {
	var opts mentionsOpts

	cmd := &cobra.Command{
		Use:   "mentions [text...]",
		Short: "List users @-mentioned in text or posts",
		Example: `  followgraph mentions "@alyssa how's the lockdown"
  followgraph mentions -f posts.json --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var set mention.Set
			if len(args) > 0 {
				set = mention.Extract(strings.Join(args, " "))
			} else {
				posts, err := opts.posts(cmd)
				if err != nil {
					return err
				}
				set = mention.ExtractAll(posts)
			}

			names := set.Sorted()
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print a JSON array")
	return cmd
}

// =============================================================================
// timespan
// =============================================================================

type timespanOpts struct {
	postsInput
	json bool
}

type timespanOutput struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// timespanCommand prints the earliest and latest post timestamps.
func (c *CLI) timespanCommand() *cobra.Command {
	var opts timespanOpts

	cmd := &cobra.Command{
		Use:   "timespan",
		Short: "Print the time window covered by posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := opts.posts(cmd)
			if err != nil {
				return err
			}
			span, ok := post.GetTimespan(posts)
			if !ok {
				return perr.New(perr.ErrCodeEmptyInput, "no posts, so no timespan")
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, timespanOutput{Start: span.Start, End: span.End})
			}
			printKeyValue(out, "start", span.Start.Format(time.RFC3339))
			printKeyValue(out, "end", span.End.Format(time.RFC3339))
			printKeyValue(out, "duration", span.Duration().String())
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}

// =============================================================================
// filter
// =============================================================================

// filterFlags are the post selection flags shared by filter and analyze.
type filterFlags struct {
	author string
	since  string
	until  string
	words  []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.author, "author", "", "keep posts by this author (case-insensitive)")
	cmd.Flags().StringVar(&f.since, "since", "", "keep posts at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.until, "until", "", "keep posts at or before this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&f.words, "word", "w", nil, "keep posts containing any of these words (repeatable or comma-separated)")
}

// options converts the flags to validated pipeline options.
func (f *filterFlags) options() (pipeline.Options, error) {
	var opts pipeline.Options
	if f.author != "" {
		if err := perr.ValidateUsername(f.author); err != nil {
			return opts, err
		}
		opts.Author = strings.TrimPrefix(f.author, "@")
	}

	var err error
	if opts.Since, err = pipeline.ParseTime(f.since); err != nil {
		return opts, perr.Wrap(perr.ErrCodeInvalidTimespan, err, "--since")
	}
	if opts.Until, err = pipeline.ParseTime(f.until); err != nil {
		return opts, perr.Wrap(perr.ErrCodeInvalidTimespan, err, "--until")
	}
	opts.Words = f.words

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

type filterOpts struct {
	postsInput
	filterFlags
	output       string
	outputFormat string
}

// filterCommand writes the posts that pass every given filter.
func (c *CLI) filterCommand() *cobra.Command {
	var opts filterOpts

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Select posts by author, time window or words",
		Example: `  followgraph filter -f posts.json --author alyssa
  followgraph filter -f posts.toml --since 2020-03-01 --word lockdown -o march.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilter(cmd, &opts)
		},
	}

	opts.postsInput.register(cmd)
	opts.filterFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.json or .toml); stdout if empty")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", string(pio.FormatJSON), "format when writing to stdout (json, toml)")
	return cmd
}

func (c *CLI) runFilter(cmd *cobra.Command, opts *filterOpts) error {
	filter, err := opts.options()
	if err != nil {
		return err
	}
	posts, err := opts.posts(cmd)
	if err != nil {
		return err
	}

	kept := pipeline.Filter(posts, filter)
	printInfo(cmd.ErrOrStderr(), "Kept %s of %d posts", StyleNumber.Render(fmt.Sprint(len(kept))), len(posts))

	if opts.output != "" {
		if err := pio.ExportPosts(kept, opts.output); err != nil {
			return err
		}
		printFile(cmd.ErrOrStderr(), opts.output)
		return nil
	}
	return pio.WritePosts(kept, cmd.OutOrStdout(), pio.Format(opts.outputFormat))
}
