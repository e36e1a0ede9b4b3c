package cli

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
	pio "github.com/matzehuels/followgraph/pkg/io"
	"github.com/matzehuels/followgraph/pkg/post"
	"github.com/matzehuels/followgraph/pkg/social"
)

// stdinPath selects standard input for --file.
const stdinPath = "-"

// postsInput holds the flags that locate a posts file.
type postsInput struct {
	file   string
	format string
}

func (in *postsInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "posts file (.json or .toml, - for stdin)")
	cmd.Flags().StringVar(&in.format, "input-format", string(pio.FormatJSON), "format of posts read from stdin (json, toml)")
}

// posts loads posts from the file, or from the command's stdin when the
// file is empty or "-".
func (in *postsInput) posts(cmd *cobra.Command) ([]post.Post, error) {
	if in.file != "" && in.file != stdinPath {
		posts, err := pio.ImportPosts(in.file)
		if err != nil {
			return nil, err
		}
		loggerFromContext(cmd.Context()).Debugf("Loaded %d posts from %s", len(posts), in.file)
		return posts, nil
	}
	posts, err := pio.ReadPosts(cmd.InOrStdin(), pio.Format(in.format))
	if err != nil {
		return nil, err
	}
	loggerFromContext(cmd.Context()).Debugf("Loaded %d posts from stdin", len(posts))
	return posts, nil
}

// followsInput locates a follows graph: either built from posts or read
// from a node-link graph file.
type followsInput struct {
	postsInput
	graph string
}

func (in *followsInput) register(cmd *cobra.Command) {
	in.postsInput.register(cmd)
	cmd.Flags().StringVarP(&in.graph, "graph", "g", "", "node-link graph file, as written by follows")
	cmd.MarkFlagsMutuallyExclusive("file", "graph")
}

func (in *followsInput) follows(cmd *cobra.Command) (social.FollowsGraph, error) {
	if in.graph == "" {
		posts, err := in.posts(cmd)
		if err != nil {
			return nil, err
		}
		return social.Build(posts), nil
	}
	if err := perr.ValidatePath(in.graph); err != nil {
		return nil, err
	}
	g, err := graph.ReadGraphFile(in.graph)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.Wrap(perr.ErrCodeFileNotFound, err, "graph file %s", in.graph)
	}
	if err != nil {
		return nil, perr.Wrap(perr.ErrCodeInvalidFormat, err, "read %s", in.graph)
	}
	return g, nil
}

// createOutput returns the file at path, or the command's stdout when path
// is empty. The returned close function is always safe to call.
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if err := perr.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, perr.Wrap(perr.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, f.Close, nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func errNegativeTop(n int) error {
	return perr.New(perr.ErrCodeInvalidInput, "--top must not be negative, got %d", n)
}
