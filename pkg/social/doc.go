// Package social infers a "follows" graph from mention evidence and ranks
// users by how many others follow them.
//
// # Follows Graph
//
// A [FollowsGraph] maps a mentioner's canonical username to the set of
// usernames that mentioner follows. Evidence is purely textual: A follows B
// iff some post authored by A mentions B and B is not A. A user who follows
// nobody is normally absent from the map; an absent key and an empty set mean
// the same thing.
//
//	g := social.Build(posts)
//	g["ALYSSA"].Has("bitch") // true if alyssa ever @-mentioned bitch
//
// [Build] is a fold over the posts. Each step produces a fresh set for the
// author it touches, so sets read in one step are never written in a later
// one, and the caller's data is never retained.
//
// # Influence Ranking
//
// [Rankings] counts incoming edges per username (each mentioner contributes at
// most one edge to any followed user) and sorts by descending count.
//
// Two policies apply:
//
//   - Users with no incoming edges are omitted, even when they appear as
//     mentioners.
//   - Equal counts are ordered by ascending canonical username.
//
// [Influencers] is the same ranking reduced to usernames.
//
// # Canonical Form
//
// All keys and members are canonical (see [mention.Canonical]). Graphs that
// come from outside this package, such as decoded JSON, should pass through
// [Normalize] before use; [Followers] and [Rankings] normalize internally.
package social
