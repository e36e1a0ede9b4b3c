package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/cache"
	perr "github.com/matzehuels/followgraph/pkg/errors"
)

// cacheCommand groups commands that manage the on-disk render cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renderings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return perr.Wrap(perr.ErrCodeInternal, err, "locate cache directory")
			}

			if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
				printInfo(cmd.ErrOrStderr(), "Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return perr.Wrap(perr.ErrCodeInternal, err, "open cache %s", dir)
			}
			n, err := fc.Clear()
			if err != nil {
				return perr.Wrap(perr.ErrCodeInternal, err, "clear cache %s", dir)
			}
			loggerFromContext(cmd.Context()).Debug("cleared render cache", "dir", dir, "entries", n)

			printSuccess(cmd.ErrOrStderr(), "Cleared %d cached renderings", n)
			printKeyValue(cmd.ErrOrStderr(), "Directory", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return perr.Wrap(perr.ErrCodeInternal, err, "locate cache directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
