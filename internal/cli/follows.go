package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/graph"
	"github.com/matzehuels/followgraph/pkg/pipeline"
	"github.com/matzehuels/followgraph/pkg/social"
)

// =============================================================================
// follows
// =============================================================================

type followsOpts struct {
	postsInput
	output string
}

// followsCommand infers the follows graph from posts and writes it as
// node-link JSON.
func (c *CLI) followsCommand() *cobra.Command {
	var opts followsOpts

	cmd := &cobra.Command{
		Use:   "follows",
		Short: "Infer who follows whom and write the graph as JSON",
		Long: `Infer the follows graph from posts: the author of a post follows every user
the post @-mentions, except themselves. The graph is written as node-link
JSON that influencers, render and explore read back with --graph.`,
		Example: `  followgraph follows -f posts.json -o graph.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := opts.posts(cmd)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			g := social.Build(posts)
			prog.done("Built follows graph", "users", len(social.Users(g)), "edges", g.EdgeCount())

			if opts.output == "" {
				return graph.WriteGraph(g, cmd.OutOrStdout())
			}
			if err := graph.WriteGraphFile(g, opts.output); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Follows graph")
			printStats(cmd.ErrOrStderr(), len(posts), len(social.Users(g)), g.EdgeCount())
			printFile(cmd.ErrOrStderr(), opts.output)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; stdout if empty")
	return cmd
}

// =============================================================================
// influencers
// =============================================================================

type influencersOpts struct {
	followsInput
	top  int
	json bool
}

// influencersCommand ranks users by follower count.
func (c *CLI) influencersCommand() *cobra.Command {
	opts := influencersOpts{top: pipeline.DefaultTop}

	cmd := &cobra.Command{
		Use:   "influencers",
		Short: "Rank users by how many others follow them",
		Long: `Rank users by follower count, highest first. Ties are ordered by username.
Users nobody follows are not listed.`,
		Example: `  followgraph influencers -f posts.json --top 5
  followgraph influencers --graph graph.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.top < 0 {
				return errNegativeTop(opts.top)
			}
			g, err := opts.follows(cmd)
			if err != nil {
				return err
			}

			ranked := social.Top(social.Rankings(g), opts.top)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), ranked)
			}
			if len(ranked) == 0 {
				printWarning(cmd.ErrOrStderr(), "Nobody follows anybody")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), rankingsTable(ranked))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.top, "top", "n", opts.top, "number of users to list (0 for all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}
