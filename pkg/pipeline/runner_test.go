package pipeline

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/observability"
	"github.com/matzehuels/followgraph/pkg/post"
	"github.com/matzehuels/followgraph/pkg/social"
)

var (
	d1 = time.Date(2016, 2, 17, 10, 0, 0, 0, time.UTC)
	d2 = time.Date(2016, 2, 17, 11, 0, 0, 0, time.UTC)
	d3 = time.Date(2016, 2, 17, 12, 0, 0, 0, time.UTC)
)

func samplePosts() []post.Post {
	return []post.Post{
		{ID: 1, Author: "alyssa", Text: "is it reasonable to talk about rivest so much? @bitdiddle", Timestamp: d1},
		{ID: 2, Author: "bitdiddle", Text: "rivest talk in 30 minutes #hype @alyssa @cy", Timestamp: d2},
		{ID: 3, Author: "cy", Text: "@alyssa see you there", Timestamp: d3},
	}
}

type recordingHooks struct {
	started   int
	completed int
	edges     int
	err       error
}

func (h *recordingHooks) OnAnalyzeStart(context.Context, int) { h.started++ }
func (h *recordingHooks) OnAnalyzeComplete(_ context.Context, _, edges int, _ time.Duration, err error) {
	h.completed++
	h.edges = edges
	h.err = err
}

func TestAnalyze(t *testing.T) {
	hooks := &recordingHooks{}
	r := &Runner{Hooks: hooks}

	res, err := r.Analyze(context.Background(), samplePosts(), Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !res.HasTimespan || !res.Timespan.Start.Equal(d1) || !res.Timespan.End.Equal(d3) {
		t.Errorf("timespan = %+v (has=%v)", res.Timespan, res.HasTimespan)
	}
	if want := []string{"ALYSSA", "BITDIDDLE", "CY"}; !slices.Equal(res.Mentions, want) {
		t.Errorf("mentions = %v, want %v", res.Mentions, want)
	}
	if !res.Graph.Follows("cy", "alyssa") || !res.Graph.Follows("bitdiddle", "cy") {
		t.Errorf("unexpected graph %v", res.Graph)
	}
	if len(res.Rankings) == 0 || res.Rankings[0] != (social.Ranking{Username: "ALYSSA", Followers: 2}) {
		t.Errorf("rankings = %v", res.Rankings)
	}
	if res.Stats.PostCount != 3 || res.Stats.AnalyzedCount != 3 || res.Stats.EdgeCount != 4 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if hooks.started != 1 || hooks.completed != 1 || hooks.edges != 4 || hooks.err != nil {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestAnalyzeFilters(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		analyzed int
	}{
		{"author", Options{Author: "ALYSSA"}, 1},
		{"since", Options{Since: d2}, 2},
		{"until", Options{Until: d2}, 2},
		{"window", Options{Since: d2, Until: d2}, 1},
		{"words", Options{Words: []string{"TALK"}}, 2},
		{"combined", Options{Since: d2, Words: []string{"talk"}}, 1},
		{"no match", Options{Author: "nobody"}, 0},
	}
	r := NewRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Analyze(context.Background(), samplePosts(), tt.opts)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if res.Stats.AnalyzedCount != tt.analyzed {
				t.Errorf("analyzed = %d, want %d", res.Stats.AnalyzedCount, tt.analyzed)
			}
			if res.HasTimespan != (tt.analyzed > 0) {
				t.Errorf("HasTimespan = %v", res.HasTimespan)
			}
		})
	}
}

func TestAnalyzeTop(t *testing.T) {
	res, err := NewRunner(nil).Analyze(context.Background(), samplePosts(), Options{Top: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rankings) != 1 || res.Rankings[0].Username != "ALYSSA" {
		t.Errorf("rankings = %v", res.Rankings)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	res, err := NewRunner(nil).Analyze(context.Background(), nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasTimespan || len(res.Mentions) != 0 || len(res.Rankings) != 0 || len(res.Graph) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	hooks := &recordingHooks{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Runner{Hooks: hooks}).Analyze(ctx, samplePosts(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if hooks.completed != 1 || hooks.err == nil {
		t.Errorf("completion hook should see the error, got %+v", hooks)
	}
}

func TestAnalyzeInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil).Analyze(context.Background(), samplePosts(), Options{Since: d3, Until: d1})
	if err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestAnalyzeUsesGlobalHooks(t *testing.T) {
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetAnalysisHooks(hooks)

	if _, err := NewRunner(nil).Analyze(context.Background(), samplePosts(), Options{}); err != nil {
		t.Fatal(err)
	}
	if hooks.started != 1 {
		t.Error("global hooks were not called")
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	posts := samplePosts()
	kept := Filter(posts, Options{})
	kept[0].Author = "changed"
	if posts[0].Author != "alyssa" {
		t.Error("Filter result aliases its input")
	}
}

func TestRenderDOT(t *testing.T) {
	g := social.FollowsGraph{"a": mention.NewSet("b")}
	out, err := NewRunner(nil).Render(context.Background(), g, RenderOptions{Format: FormatDOT})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"A" -> "B";`) {
		t.Errorf("unexpected DOT:\n%s", out)
	}
}

func TestRenderSVG(t *testing.T) {
	g := social.FollowsGraph{"a": mention.NewSet("b")}
	out, err := NewRunner(nil).Render(context.Background(), g, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Error("default format should be SVG")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := NewRunner(nil).Render(context.Background(), social.FollowsGraph{}, RenderOptions{Format: "gif"})
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

// mapCache is an in-memory cache.Cache that counts hits.
type mapCache struct {
	data map[string][]byte
	hits int
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.data[key] = data
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestRenderUsesCache(t *testing.T) {
	c := &mapCache{data: map[string][]byte{}}
	r := NewRunner(nil)
	r.Cache = c

	g := social.FollowsGraph{"a": mention.NewSet("b")}
	first, err := r.Render(context.Background(), g, RenderOptions{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.data) != 1 {
		t.Fatalf("cache has %d entries, want 1", len(c.data))
	}

	// Case variants normalize to the same graph and hit the same entry.
	second, err := r.Render(context.Background(), social.FollowsGraph{"A": mention.NewSet("B")}, RenderOptions{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if c.hits != 1 || string(first) != string(second) {
		t.Errorf("hits = %d, want cached output", c.hits)
	}

	if _, err := r.Render(context.Background(), g, RenderOptions{Format: FormatSVG, Detailed: true}); err != nil {
		t.Fatal(err)
	}
	if len(c.data) != 2 {
		t.Errorf("different options should use a new entry, have %d", len(c.data))
	}
}

func TestRenderDOTSkipsCache(t *testing.T) {
	c := &mapCache{data: map[string][]byte{}}
	r := NewRunner(nil)
	r.Cache = c
	if _, err := r.Render(context.Background(), social.FollowsGraph{"a": mention.NewSet("b")}, RenderOptions{Format: FormatDOT}); err != nil {
		t.Fatal(err)
	}
	if len(c.data) != 0 {
		t.Error("DOT output should not be cached")
	}
}

type recordingRenderHooks struct {
	formats []string
	size    int
	err     error
}

func (h *recordingRenderHooks) OnRenderStart(_ context.Context, format string, _ int) {
	h.formats = append(h.formats, format)
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	h.size, h.err = size, err
}

func TestRenderUsesRunnerHooks(t *testing.T) {
	global := &recordingRenderHooks{}
	observability.SetRenderHooks(global)
	t.Cleanup(observability.Reset)

	local := &recordingRenderHooks{}
	r := NewRunner(nil)
	r.RenderHooks = local

	out, err := r.Render(context.Background(), social.FollowsGraph{"a": mention.NewSet("b")}, RenderOptions{Format: FormatDOT})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(local.formats, []string{FormatDOT}) || local.size != len(out) {
		t.Errorf("runner hooks = %+v, want one dot render of %d bytes", local, len(out))
	}
	if len(global.formats) != 0 {
		t.Errorf("global hooks should not fire when the runner has its own, got %v", global.formats)
	}
}
