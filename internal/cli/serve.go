package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/internal/config"
	"github.com/matzehuels/followgraph/internal/server"
)

type serveOpts struct {
	configFile string
	addr       string
}

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve the analysis API over HTTP until interrupted.

Settings come from FOLLOWGRAPH_* environment variables and an optional
followgraph.yaml in the working directory or ./config. Flags override both.`,
		Example: `  followgraph serve --addr :9090
  FOLLOWGRAPH_MAX_BODY_BYTES=4194304 followgraph serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Addr = opts.addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !c.verboseSet {
				c.Logger.SetLevel(cfg.LogLevel)
			}
			if cfg.File != "" {
				c.Logger.Debug("loaded config", "file", cfg.File)
			}
			return server.New(cfg, c.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: followgraph.yaml if present)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	return cmd
}
