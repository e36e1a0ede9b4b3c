package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/followgraph/pkg/post"
)

// WritePosts encodes posts to w in the given format.
// The output can be read back with [ReadPosts].
func WritePosts(posts []post.Post, w io.Writer, format Format) error {
	file := postsFile{Posts: posts}
	if file.Posts == nil {
		file.Posts = []post.Post{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(file)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ExportPosts writes posts to path, choosing the format by extension.
func ExportPosts(posts []post.Post, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePosts(posts, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
