// Package cli implements the followgraph command-line interface.
//
// Commands read posts from JSON or TOML files (or stdin), run the analysis
// pipeline, and print results as styled tables or JSON. The CLI is built
// using cobra; logging goes through charmbracelet/log on stderr so stdout
// stays clean for piping.
//
// # Commands
//
//   - mentions: users mentioned in text or posts
//   - follows: infer the follows graph as node-link JSON
//   - influencers: rank users by follower count
//   - timespan: the time window covered by posts
//   - filter: select posts by author, time window or words
//   - analyze: the full pipeline in one report
//   - render: draw the follows graph as DOT, SVG, PNG or PDF
//   - roots: integer roots of a quadratic
//   - explore: browse rankings interactively
//   - serve: run the HTTP API
//   - cache: clear or locate the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/buildinfo"
	"github.com/matzehuels/followgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and config lookup.
const appName = "followgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// verboseSet records that --verbose chose the level, so serve keeps it
	// instead of the configured level.
	verboseSet bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verboseSet = level == LogDebug
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "followgraph infers who follows whom from @-mentions",
		Long: `followgraph analyzes short text posts: it extracts @-mentions, filters posts
by author, time and keyword, infers a follows graph from mention evidence and
ranks users by how many others follow them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.mentionsCommand())
	root.AddCommand(c.followsCommand())
	root.AddCommand(c.influencersCommand())
	root.AddCommand(c.timespanCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.rootsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
