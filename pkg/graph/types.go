package graph

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/followgraph/pkg/mention"
	"github.com/matzehuels/followgraph/pkg/social"
)

// =============================================================================
// Graph - Follows Graph Serialization
// =============================================================================

// Graph is the serialization format for follows graphs.
// import → export → re-import produces identical results.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a user in the serialized graph.
type Node struct {
	ID        string `json:"id"`
	Followers int    `json:"followers"` // In-degree
	Following int    `json:"following"` // Out-degree
}

// Edge states that From follows To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// FollowsGraph ↔ Graph Conversion
// =============================================================================

// FromFollows converts a follows graph to its serialization format.
// The input is normalized first. Nodes are sorted by ID and edges by
// (from, to) for deterministic output.
func FromFollows(g social.FollowsGraph) Graph {
	norm := social.Normalize(g)
	followers := social.Followers(norm)
	users := social.Users(norm)

	out := Graph{
		Nodes: make([]Node, len(users)),
		Edges: make([]Edge, 0, norm.EdgeCount()),
	}
	for i, id := range users {
		out.Nodes[i] = Node{
			ID:        id,
			Followers: followers[id],
			Following: norm[id].Len(),
		}
	}
	for _, from := range social.Mentioners(norm) {
		for _, to := range norm[from].Sorted() {
			out.Edges = append(out.Edges, Edge{From: from, To: to})
		}
	}
	return out
}

// ToFollows converts a Graph back to a follows graph.
// Node IDs are free-form author names; only blank IDs are rejected, as are
// edges that reference an unknown node. Self-edges and duplicate edges are
// dropped.
func ToFollows(gj Graph) (social.FollowsGraph, error) {
	known := make(mention.Set, len(gj.Nodes))
	for _, n := range gj.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return nil, fmt.Errorf("node %q: empty id", n.ID)
		}
		known.Add(n.ID)
	}

	g := make(social.FollowsGraph)
	for _, e := range gj.Edges {
		if !known.Has(e.From) {
			return nil, fmt.Errorf("edge %s→%s: unknown node %q", e.From, e.To, e.From)
		}
		if !known.Has(e.To) {
			return nil, fmt.Errorf("edge %s→%s: unknown node %q", e.From, e.To, e.To)
		}
		from := mention.Canonical(e.From)
		g[from] = g[from].Union(mention.NewSet(e.To))
	}
	return social.Normalize(g), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Sort orders nodes by ID and edges by (from, to) in place.
func (g Graph) Sort() {
	slices.SortFunc(g.Nodes, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(g.Edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
}
