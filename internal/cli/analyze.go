package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/pipeline"
)

type analyzeOpts struct {
	postsInput
	filterFlags
	top  int
	json bool
}

// analyzeCommand runs the whole pipeline: filter, timespan, mentions,
// follows graph and rankings.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{top: pipeline.DefaultTop}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and print a report",
		Example: `  followgraph analyze -f posts.json
  followgraph analyze -f posts.json --since 2020-03-01 --word lockdown --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, &opts)
		},
	}

	opts.postsInput.register(cmd)
	opts.filterFlags.register(cmd)
	cmd.Flags().IntVarP(&opts.top, "top", "n", opts.top, "number of users to rank (0 for all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, opts *analyzeOpts) error {
	if opts.top < 0 {
		return errNegativeTop(opts.top)
	}
	popts, err := opts.options()
	if err != nil {
		return err
	}
	popts.Top = opts.top

	posts, err := opts.posts(cmd)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(cmd.Context()))
	result, err := c.newRunner().Analyze(cmd.Context(), posts, popts)
	if err != nil {
		return err
	}
	prog.done("Analyzed posts", "analyzed", result.Stats.AnalyzedCount, "users", result.Stats.UserCount)

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	printReport(cmd.OutOrStdout(), result)
	return nil
}

// printReport prints a human-readable analysis summary.
func printReport(w io.Writer, r *pipeline.Result) {
	fmt.Fprintln(w, StyleTitle.Render("Analysis"))
	printStats(w, r.Stats.AnalyzedCount, r.Stats.UserCount, r.Stats.EdgeCount)
	if r.Stats.AnalyzedCount != r.Stats.PostCount {
		fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("%d of %d posts matched the filter", r.Stats.AnalyzedCount, r.Stats.PostCount)))
	}
	fmt.Fprintln(w)

	if r.HasTimespan {
		printKeyValue(w, "from", r.Timespan.Start.Format(time.RFC3339))
		printKeyValue(w, "to", r.Timespan.End.Format(time.RFC3339))
	} else {
		printKeyValue(w, "timespan", "none")
	}

	mentions := "none"
	if len(r.Mentions) > 0 {
		mentions = strings.Join(r.Mentions, ", ")
	}
	printKeyValue(w, "mentions", mentions)
	fmt.Fprintln(w)

	if len(r.Rankings) == 0 {
		fmt.Fprintln(w, StyleWarning.Render("Nobody follows anybody"))
		return
	}
	fmt.Fprintln(w, rankingsTable(r.Rankings))
}
