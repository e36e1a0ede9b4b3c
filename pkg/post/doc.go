// Package post defines the Post record and the time-based helpers that work
// over sequences of posts.
//
// # Overview
//
// A [Post] is an immutable value: an identifier, an author, a text body and a
// timestamp. Callers construct posts once and hand them to the analysis
// packages by value. Nothing in this module mutates or retains a post beyond
// the call it was passed to.
//
// # Timespans
//
// [GetTimespan] returns the minimal [Timespan] covering a set of posts in a
// single linear scan. An empty input has no timespan; the second return value
// reports that explicitly instead of returning a zero interval.
//
//	span, ok := post.GetTimespan(posts)
//	if !ok {
//	    // no posts
//	}
//
// # Filtering
//
// [WrittenBy], [InTimespan] and [Containing] select posts by author, by time
// and by keyword. All three preserve the relative order of the input and
// return a freshly allocated slice.
//
// Author and keyword comparisons are case-insensitive. Timespan bounds are
// inclusive on both ends.
package post
