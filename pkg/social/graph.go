package social

import (
	"maps"
	"slices"

	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/post"
)

// FollowsGraph maps a mentioner to the users they follow.
type FollowsGraph map[string]mention.Set

// Build guesses who follows whom from the mentions in posts.
// The result depends only on the multiset of (author, text) pairs.
func Build(posts []post.Post) FollowsGraph {
	g := make(FollowsGraph)
	for _, p := range posts {
		g = g.follow(p.Author, mention.Extract(p.Text))
	}
	return g
}

// follow is the fold step: it unions mentioned (minus the author) into the
// author's entry, replacing that entry with a new set.
func (g FollowsGraph) follow(author string, mentioned mention.Set) FollowsGraph {
	author = mention.Canonical(author)
	mentioned = mentioned.Without(author)
	if mentioned.Len() == 0 {
		return g
	}
	g[author] = g[author].Union(mentioned)
	return g
}

// Normalize returns a canonical copy of g: keys and members are canonical,
// case variants are merged, self-edges and empty entries are dropped.
func Normalize(g FollowsGraph) FollowsGraph {
	out := make(FollowsGraph, len(g))
	for author, following := range g {
		set := make(mention.Set, len(following))
		for name := range following {
			set.Add(name)
		}
		out = out.follow(author, set)
	}
	return out
}

// Follows reports whether from follows to, ignoring case.
func (g FollowsGraph) Follows(from, to string) bool {
	return g[mention.Canonical(from)].Has(to)
}

// EdgeCount returns the number of (mentioner, followed) pairs.
func (g FollowsGraph) EdgeCount() int {
	n := 0
	for _, following := range g {
		n += following.Len()
	}
	return n
}

// Users returns every username that appears in g as a key or a member,
// sorted ascending. Keys with empty sets are included.
func Users(g FollowsGraph) []string {
	seen := make(mention.Set)
	for author, following := range g {
		seen.Add(author)
		for name := range following {
			seen.Add(name)
		}
	}
	return seen.Sorted()
}

// Mentioners returns the keys of g that follow at least one user, sorted.
func Mentioners(g FollowsGraph) []string {
	var out []string
	for author, following := range g {
		if following.Len() > 0 {
			out = append(out, mention.Canonical(author))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Equal reports whether a and b describe the same relation.
// Both are normalized first, so casing and empty entries don't matter.
func Equal(a, b FollowsGraph) bool {
	na, nb := Normalize(a), Normalize(b)
	return maps.EqualFunc(na, nb, func(x, y mention.Set) bool {
		return slices.Equal(x.Sorted(), y.Sorted())
	})
}
