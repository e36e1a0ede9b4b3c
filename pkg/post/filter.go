package post

import "strings"

// WrittenBy returns the posts whose author equals username, ignoring case.
func WrittenBy(posts []Post, username string) []Post {
	return filter(posts, func(p Post) bool {
		return strings.EqualFold(p.Author, username)
	})
}

// InTimespan returns the posts whose timestamp lies within span.
func InTimespan(posts []Post, span Timespan) []Post {
	return filter(posts, func(p Post) bool {
		return span.Contains(p.Timestamp)
	})
}

// Containing returns the posts that include at least one of words.
// A post's text is split on whitespace and each resulting word is compared
// case-insensitively; substrings do not match.
func Containing(posts []Post, words []string) []Post {
	if len(words) == 0 {
		return []Post{}
	}
	want := make(map[string]struct{}, len(words))
	for _, w := range words {
		want[strings.ToLower(w)] = struct{}{}
	}

	return filter(posts, func(p Post) bool {
		for _, w := range strings.Fields(p.Text) {
			if _, ok := want[strings.ToLower(w)]; ok {
				return true
			}
		}
		return false
	})
}

func filter(posts []Post, keep func(Post) bool) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
