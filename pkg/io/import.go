package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/post"
)

// Format identifies a post file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// postsFile is the object form shared by both encodings.
type postsFile struct {
	Posts []post.Post `json:"posts" toml:"posts"`
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", perr.New(perr.ErrCodeUnsupported, "unsupported posts file %q (want .json or .toml)", path)
	}
}

// ImportPosts reads the posts file at path.
// The format is chosen by extension; see [FormatFromPath].
func ImportPosts(path string) ([]post.Post, error) {
	if err := perr.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.Wrap(perr.ErrCodeFileNotFound, err, "posts file %s", path)
	}
	if err != nil {
		return nil, perr.Wrap(perr.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	posts, err := ReadPosts(f, format)
	if err != nil {
		code := perr.GetCode(err)
		if code == "" {
			code = perr.ErrCodeInvalidFormat
		}
		return nil, perr.Wrap(code, err, "read %s", path)
	}
	return posts, nil
}

// ReadPosts decodes posts from r in the given format and validates them.
// ReadPosts does not close r.
func ReadPosts(r io.Reader, format Format) ([]post.Post, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, perr.New(perr.ErrCodeUnsupported, "unsupported format %q", format)
	}
}

// ReadJSON decodes a JSON array of posts, or an object with a "posts" array.
func ReadJSON(r io.Reader) ([]post.Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(perr.ErrCodeInvalidFormat, err, "read posts")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []post.Post{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var posts []post.Post
	if data[0] == '[' {
		err = dec.Decode(&posts)
	} else {
		var file postsFile
		err = dec.Decode(&file)
		posts = file.Posts
	}
	if err != nil {
		return nil, perr.Wrap(perr.ErrCodeInvalidFormat, err, "decode JSON posts")
	}
	return checked(posts)
}

// ReadTOML decodes a TOML document with a [[posts]] array of tables.
func ReadTOML(r io.Reader) ([]post.Post, error) {
	var file postsFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, perr.Wrap(perr.ErrCodeInvalidFormat, err, "decode TOML posts")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perr.New(perr.ErrCodeInvalidFormat, "unknown TOML key %q", undecoded[0].String())
	}
	return checked(file.Posts)
}

func checked(posts []post.Post) ([]post.Post, error) {
	if err := Validate(posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

// Validate checks that every post has an author and a timestamp and that ids
// are unique. The error names the offending index.
func Validate(posts []post.Post) error {
	seen := make(map[int64]int, len(posts))
	for i, p := range posts {
		if strings.TrimSpace(p.Author) == "" {
			return perr.New(perr.ErrCodeInvalidInput, "post %d: author is required", i)
		}
		if p.Timestamp.IsZero() {
			return perr.New(perr.ErrCodeInvalidInput, "post %d: timestamp is required", i)
		}
		if j, dup := seen[p.ID]; dup {
			return perr.New(perr.ErrCodeInvalidInput, "post %d: duplicate id %d (first at %d)", i, p.ID, j)
		}
		seen[p.ID] = i
	}
	return nil
}
