package post

import (
	"errors"
	"time"
)

// ErrInvertedTimespan is returned by [NewTimespan] when start is after end.
var ErrInvertedTimespan = errors.New("timespan start is after end")

// Post is a short text message with an author and a timestamp.
// The zero value is a valid, if meaningless, post.
type Post struct {
	ID        int64     `json:"id" toml:"id"`
	Author    string    `json:"author" toml:"author"`
	Text      string    `json:"text" toml:"text"`
	Timestamp time.Time `json:"timestamp" toml:"timestamp"`
}

// Timespan is a closed interval of time. Start is never after End.
type Timespan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimespan returns the interval [start, end].
// Returns ErrInvertedTimespan if start is after end.
func NewTimespan(start, end time.Time) (Timespan, error) {
	if start.After(end) {
		return Timespan{}, ErrInvertedTimespan
	}
	return Timespan{Start: start, End: end}, nil
}

// Contains reports whether t lies within the span, bounds included.
func (s Timespan) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// Duration returns End minus Start.
func (s Timespan) Duration() time.Duration { return s.End.Sub(s.Start) }

// GetTimespan returns the smallest timespan containing the timestamp of every
// post. It reports false when posts is empty.
func GetTimespan(posts []Post) (Timespan, bool) {
	if len(posts) == 0 {
		return Timespan{}, false
	}

	early := posts[0].Timestamp
	late := posts[0].Timestamp
	for _, p := range posts[1:] {
		if p.Timestamp.Before(early) {
			early = p.Timestamp
		}
		if p.Timestamp.After(late) {
			late = p.Timestamp
		}
	}
	return Timespan{Start: early, End: late}, true
}
