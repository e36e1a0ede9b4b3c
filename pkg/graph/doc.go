// Package graph provides the serialization format for follows graphs.
//
// This package defines the wire format for followgraph's graph data, used for
// JSON files, API responses, and interoperability with other tools.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Node], [Edge]: serialization types (this package)
//   - social.FollowsGraph: in-memory representation
//
// Use [FromFollows] and [ToFollows] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Every user appears as a node with its
// follower and following counts; every (mentioner, followed) pair is an edge:
//
//	{
//	  "nodes": [{"id": "ALYSSA", "followers": 0, "following": 1},
//	            {"id": "BITDIDDLE", "followers": 1, "following": 0}],
//	  "edges": [{"from": "ALYSSA", "to": "BITDIDDLE"}]
//	}
//
// Nodes are sorted by ID and edges by (from, to), so the same relation always
// serializes to the same bytes.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("follows.json") // File → FollowsGraph
//	graph.WriteGraphFile(g, "output.json")      // FollowsGraph → File
//	data, _ := graph.MarshalGraph(g)            // FollowsGraph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// When decoding, the counts on nodes are informational and ignored. IDs are
// canonicalized, so hand-written files may use any casing. An edge naming a
// user absent from the node list is rejected.
package graph
