package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/followgraph/pkg/buildinfo"
	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
	pio "github.com/matzehuels/followgraph/pkg/io"
	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/pipeline"
	"github.com/matzehuels/followgraph/pkg/post"
	"github.com/matzehuels/followgraph/pkg/quadratic"
	"github.com/matzehuels/followgraph/pkg/social"
)

// =============================================================================
// Payloads
// =============================================================================

type postPayload struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author" validate:"required"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

type mentionsRequest struct {
	Text string `json:"text"`
}

type postsRequest struct {
	Posts []postPayload `json:"posts" validate:"dive"`
}

type influencersRequest struct {
	Posts []postPayload `json:"posts,omitempty" validate:"required_without=Graph,excluded_with=Graph,dive"`
	Graph *graph.Graph  `json:"graph,omitempty" validate:"required_without=Posts"`
}

type filterPayload struct {
	Author string    `json:"author,omitempty" validate:"omitempty,username"`
	Since  time.Time `json:"since,omitzero"`
	Until  time.Time `json:"until,omitzero"`
	Words  []string  `json:"words,omitempty"`
	Top    int       `json:"top,omitempty" validate:"gte=0"`
}

type analyzeRequest struct {
	Posts  []postPayload `json:"posts" validate:"dive"`
	Filter filterPayload `json:"filter"`
}

type renderRequest struct {
	Posts     []postPayload `json:"posts,omitempty" validate:"required_without=Graph,excluded_with=Graph,dive"`
	Graph     *graph.Graph  `json:"graph,omitempty" validate:"required_without=Posts"`
	Format    string        `json:"format,omitempty" validate:"omitempty,oneof=dot svg png pdf"`
	Detailed  bool          `json:"detailed,omitempty"`
	Highlight int           `json:"highlight,omitempty" validate:"gte=0"`
	Scale     float64       `json:"scale,omitempty" validate:"gte=0"`
}

type rootsRequest struct {
	A *int64 `json:"a" validate:"required"`
	B *int64 `json:"b" validate:"required"`
	C *int64 `json:"c" validate:"required"`
}

// =============================================================================
// Responses
// =============================================================================

type mentionsResponse struct {
	Mentions []string `json:"mentions"`
}

type influencersResponse struct {
	Rankings []social.Ranking `json:"rankings"`
}

type analyzeResponse struct {
	Timespan *post.Timespan   `json:"timespan"`
	Mentions []string         `json:"mentions"`
	Graph    graph.Graph      `json:"graph"`
	Rankings []social.Ranking `json:"rankings"`
	Stats    pipeline.Stats   `json:"stats"`
}

type rootsResponse struct {
	Roots []int64 `json:"roots"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(*http.Request) (any, error) {
	return map[string]string{"status": "ok"}, nil
}

func (s *Server) version(*http.Request) (any, error) {
	return buildinfo.Get(), nil
}

func (s *Server) mentions(_ *http.Request, in mentionsRequest) (any, error) {
	return mentionsResponse{Mentions: mention.Extract(in.Text).Sorted()}, nil
}

func (s *Server) follows(_ *http.Request, in postsRequest) (any, error) {
	posts, err := toPosts(in.Posts)
	if err != nil {
		return nil, err
	}
	return graph.FromFollows(social.Build(posts)), nil
}

func (s *Server) influencers(r *http.Request, in influencersRequest) (any, error) {
	top, err := s.topParam(r)
	if err != nil {
		return nil, err
	}

	g, err := followsFrom(in.Posts, in.Graph)
	if err != nil {
		return nil, err
	}
	return influencersResponse{Rankings: social.Top(social.Rankings(g), top)}, nil
}

func (s *Server) timespan(_ *http.Request, in postsRequest) (any, error) {
	posts, err := toPosts(in.Posts)
	if err != nil {
		return nil, err
	}
	span, ok := post.GetTimespan(posts)
	if !ok {
		return nil, perr.New(perr.ErrCodeEmptyInput, "timespan needs at least one post")
	}
	return span, nil
}

func (s *Server) analyze(r *http.Request, in analyzeRequest) (any, error) {
	posts, err := toPosts(in.Posts)
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{
		Author: in.Filter.Author,
		Since:  in.Filter.Since,
		Until:  in.Filter.Until,
		Words:  in.Filter.Words,
		Top:    in.Filter.Top,
	}
	res, err := s.runner.Analyze(r.Context(), posts, opts)
	if err != nil {
		return nil, err
	}

	out := analyzeResponse{
		Mentions: res.Mentions,
		Graph:    graph.FromFollows(res.Graph),
		Rankings: res.Rankings,
		Stats:    res.Stats,
	}
	if res.HasTimespan {
		out.Timespan = &res.Timespan
	}
	return out, nil
}

// contentTypes maps render formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// render writes the diagram bytes directly; only failures use the envelope.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	in, err := parseJSON[renderRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	g, err := followsFrom(in.Posts, in.Graph)
	if err != nil {
		respondError(w, r, err)
		return
	}

	format := in.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	out, err := s.runner.Render(r.Context(), g, pipeline.RenderOptions{
		Format:    format,
		Detailed:  in.Detailed,
		Highlight: in.Highlight,
		Scale:     in.Scale,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) roots(_ *http.Request, in rootsRequest) (any, error) {
	roots, err := quadratic.Roots(*in.A, *in.B, *in.C)
	if errors.Is(err, quadratic.ErrDegenerate) {
		return nil, perr.Wrap(perr.ErrCodeInvalidInput, err, "every integer is a root when a, b and c are all zero")
	}
	if err != nil {
		return nil, err
	}
	return rootsResponse{Roots: roots}, nil
}

// =============================================================================
// Helpers
// =============================================================================

// followsFrom returns the supplied graph, or builds one from posts.
func followsFrom(posts []postPayload, gj *graph.Graph) (social.FollowsGraph, error) {
	if gj != nil {
		g, err := graph.ToFollows(*gj)
		if err != nil {
			return nil, perr.New(perr.ErrCodeInvalidInput, "graph: %v", err)
		}
		return g, nil
	}
	in, err := toPosts(posts)
	if err != nil {
		return nil, err
	}
	return social.Build(in), nil
}

func toPosts(in []postPayload) ([]post.Post, error) {
	posts := make([]post.Post, len(in))
	for i, p := range in {
		posts[i] = post.Post{ID: p.ID, Author: p.Author, Text: p.Text, Timestamp: p.Timestamp}
	}
	if err := pio.Validate(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// topParam reads ?top=N, falling back to the configured default.
func (s *Server) topParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return s.cfg.DefaultTop, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, perr.New(perr.ErrCodeInvalidInput, "top must be a non-negative integer, got %q", raw)
	}
	return n, nil
}
