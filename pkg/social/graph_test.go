package social

import (
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/post"
)

var at = time.Date(2016, 2, 17, 10, 0, 0, 0, time.UTC)

var (
	tweet0 = post.Post{ID: 0, Author: "aLYssA", Text: "is it reasonable to talk about rivest so much?@bitch", Timestamp: at}
	tweet1 = post.Post{ID: 1, Author: "alyssa", Text: "is it reasonable to talk about rivest so much?@BITCH", Timestamp: at}
	tweet2 = post.Post{ID: 2, Author: "bitch", Text: "email@cumin, @doggie @otherone  rivest talk in 30 minutes #hype", Timestamp: at}
	tweet3 = post.Post{ID: 3, Author: "cumin", Text: "@alyssa @biTCh @cumin my time at portia becomes boring", Timestamp: at}
	tweet4 = post.Post{ID: 4, Author: "DoGGIE", Text: "@doggie @CUMIN @DOGGIE but I'm expecting how the baby is like", Timestamp: at}
	tweet5 = post.Post{ID: 5, Author: "ESCA-late", Text: "pity that i am not fully socialized", Timestamp: at}
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		posts []post.Post
		want  map[string][]string
	}{
		{"empty", nil, map[string][]string{}},
		{"no mentions", []post.Post{tweet5}, map[string][]string{}},
		{
			"non-overlapping",
			[]post.Post{tweet1, tweet2},
			map[string][]string{"ALYSSA": {"BITCH"}, "BITCH": {"DOGGIE", "OTHERONE"}},
		},
		{
			"overlapping mentions merge",
			[]post.Post{tweet0, tweet1},
			map[string][]string{"ALYSSA": {"BITCH"}},
		},
		{
			"self mentions dropped",
			[]post.Post{tweet3, tweet4},
			map[string][]string{"CUMIN": {"ALYSSA", "BITCH"}, "DOGGIE": {"CUMIN"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.posts)
			if len(g) != len(tt.want) {
				t.Fatalf("len(Build()) = %d, want %d: %v", len(g), len(tt.want), g)
			}
			for author, want := range tt.want {
				if got := g[author].Sorted(); !slices.Equal(got, want) {
					t.Errorf("Build()[%s] = %v, want %v", author, got, want)
				}
			}
		})
	}
}

func TestBuildAccumulatesAcrossPosts(t *testing.T) {
	posts := []post.Post{
		{Author: "ann", Text: "@bob"},
		{Author: "ANN", Text: "@carol"},
		{Author: "Ann", Text: "@Bob again"},
	}
	g := Build(posts)
	if got := g["ANN"].Sorted(); !slices.Equal(got, []string{"BOB", "CAROL"}) {
		t.Errorf("Build()[ANN] = %v, want [BOB CAROL]", got)
	}
}

func TestBuildNoSelfEdges(t *testing.T) {
	posts := []post.Post{tweet0, tweet1, tweet2, tweet3, tweet4, tweet5,
		{Author: "Loop", Text: "@loop @LOOP @lOoP"},
	}
	for author, following := range Build(posts) {
		if following.Has(author) {
			t.Errorf("%s follows themselves", author)
		}
	}
}

func TestBuildOrderIndependent(t *testing.T) {
	posts := []post.Post{tweet0, tweet1, tweet2, tweet3, tweet4, tweet5}
	reversed := slices.Clone(posts)
	slices.Reverse(reversed)

	if !Equal(Build(posts), Build(reversed)) {
		t.Error("Build() result depends on post order")
	}
}

func TestBuildDoesNotShareSets(t *testing.T) {
	g := Build([]post.Post{{Author: "ann", Text: "@bob"}})
	first := g["ANN"]
	g2 := Build([]post.Post{{Author: "ann", Text: "@bob"}, {Author: "ann", Text: "@carol"}})
	if first.Has("carol") {
		t.Error("sets leaked between builds")
	}
	if !g2["ANN"].Has("carol") {
		t.Error("second build missing CAROL")
	}
}

func TestNormalize(t *testing.T) {
	g := FollowsGraph{
		"ann":  mention.Set{"bob": {}, "ANN": {}},
		"ANN":  mention.Set{"Carol": {}},
		"dave": mention.Set{},
		"Eve":  mention.Set{"eve": {}},
	}
	n := Normalize(g)

	if len(n) != 1 {
		t.Fatalf("Normalize() = %v, want only ANN", n)
	}
	if got := n["ANN"].Sorted(); !slices.Equal(got, []string{"BOB", "CAROL"}) {
		t.Errorf("Normalize()[ANN] = %v", got)
	}
	if _, ok := g["ANN"]["BOB"]; ok {
		t.Error("Normalize() modified its input")
	}
}

func TestUsersAndMentioners(t *testing.T) {
	g := Build([]post.Post{tweet1, tweet2})
	wantUsers := []string{"ALYSSA", "BITCH", "DOGGIE", "OTHERONE"}
	if got := Users(g); !slices.Equal(got, wantUsers) {
		t.Errorf("Users() = %v, want %v", got, wantUsers)
	}
	if got := Mentioners(g); !slices.Equal(got, []string{"ALYSSA", "BITCH"}) {
		t.Errorf("Mentioners() = %v", got)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if !g.Follows("alyssa", "Bitch") || g.Follows("bitch", "alyssa") {
		t.Error("Follows() is wrong")
	}
}
