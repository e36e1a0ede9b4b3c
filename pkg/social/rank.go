package social

import (
	"cmp"
	"slices"
)

// Ranking pairs a username with its follower count.
type Ranking struct {
	Username  string `json:"username"`
	Followers int    `json:"followers"`
}

// Followers returns the number of distinct mentioners following each
// username. Usernames with no followers are absent.
func Followers(g FollowsGraph) map[string]int {
	counts := make(map[string]int)
	for _, following := range Normalize(g) {
		for name := range following {
			counts[name]++
		}
	}
	return counts
}

// Rankings returns every followed username by descending follower count,
// ties broken by ascending username.
func Rankings(g FollowsGraph) []Ranking {
	counts := Followers(g)
	out := make([]Ranking, 0, len(counts))
	for name, n := range counts {
		out = append(out, Ranking{Username: name, Followers: n})
	}
	slices.SortFunc(out, func(a, b Ranking) int {
		if c := cmp.Compare(b.Followers, a.Followers); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})
	return out
}

// Influencers returns the usernames of [Rankings] in order.
func Influencers(g FollowsGraph) []string {
	ranked := Rankings(g)
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Username
	}
	return out
}

// Top returns at most n leading rankings. n <= 0 returns them all.
func Top(ranked []Ranking, n int) []Ranking {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
