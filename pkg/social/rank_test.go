package social

import (
	"slices"
	"testing"

	"github.com/matzehuels/followgraph/pkg/mention"
)

func TestInfluencers(t *testing.T) {
	tests := []struct {
		name  string
		graph FollowsGraph
		want  []string
	}{
		{"empty", FollowsGraph{}, []string{}},
		{
			"no draw",
			FollowsGraph{
				"a": mention.NewSet("b"),
				"b": mention.NewSet("a"),
				"c": mention.NewSet("b", "a"),
				"d": mention.NewSet("a"),
				"q": mention.NewSet("c"),
			},
			[]string{"A", "B", "C"},
		},
		{
			"draw broken by name",
			FollowsGraph{
				"a": mention.NewSet("b"),
				"b": mention.NewSet("a"),
				"c": mention.NewSet("b", "a"),
				"d": mention.NewSet("a"),
				"q": mention.NewSet("b", "c"),
			},
			[]string{"A", "B", "C"},
		},
		{
			"case variants count once",
			FollowsGraph{
				"x": mention.Set{"y": {}, "Y": {}},
				"X": mention.Set{"y": {}},
				"z": mention.Set{"Y": {}},
			},
			[]string{"Y"},
		},
		{
			"all tied",
			FollowsGraph{
				"m": mention.NewSet("zed"),
				"n": mention.NewSet("amy"),
				"o": mention.NewSet("kim"),
			},
			[]string{"AMY", "KIM", "ZED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Influencers(tt.graph); !slices.Equal(got, tt.want) {
				t.Errorf("Influencers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankingsCounts(t *testing.T) {
	g := FollowsGraph{
		"a": mention.NewSet("b"),
		"b": mention.NewSet("a"),
		"c": mention.NewSet("b", "a"),
		"d": mention.NewSet("a"),
		"q": mention.NewSet("c"),
	}
	want := []Ranking{{"A", 3}, {"B", 2}, {"C", 1}}
	if got := Rankings(g); !slices.Equal(got, want) {
		t.Errorf("Rankings() = %v, want %v", got, want)
	}
}

func TestRankingsSortedAndUnique(t *testing.T) {
	g := FollowsGraph{
		"p1": mention.NewSet("u1", "u2", "u3"),
		"p2": mention.NewSet("u2", "U3"),
		"P3": mention.NewSet("u3", "p1"),
	}
	ranked := Rankings(g)
	seen := make(map[string]bool)
	for i, r := range ranked {
		if seen[r.Username] {
			t.Errorf("duplicate %s", r.Username)
		}
		seen[r.Username] = true
		if i > 0 && ranked[i-1].Followers < r.Followers {
			t.Errorf("not sorted at %d: %v", i, ranked)
		}
	}
}

func TestZeroFollowerUsersOmitted(t *testing.T) {
	g := FollowsGraph{"d": mention.NewSet("a"), "q": mention.NewSet("a")}
	got := Influencers(g)
	if slices.Contains(got, "D") || slices.Contains(got, "Q") {
		t.Errorf("Influencers() = %v, zero-follower mentioners should be omitted", got)
	}
}

func TestTop(t *testing.T) {
	ranked := []Ranking{{"A", 3}, {"B", 2}, {"C", 1}}
	if got := Top(ranked, 2); len(got) != 2 || got[1].Username != "B" {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(ranked, 0); len(got) != 3 {
		t.Errorf("Top(0) = %v", got)
	}
	if got := Top(ranked, 10); len(got) != 3 {
		t.Errorf("Top(10) = %v", got)
	}
}
