package mention

import (
	"strings"

	"github.com/matzehuels/followgraph/pkg/post"
)

// sigil marks the start of a mention.
const sigil = '@'

// IsUsernameChar reports whether c may appear in a username.
func IsUsernameChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '-':
		return true
	}
	return false
}

// IsValidUsername reports whether name is a non-empty run of username characters.
func IsValidUsername(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !IsUsernameChar(name[i]) {
			return false
		}
	}
	return true
}

// Canonical returns the identity form of a username.
// Two spellings denote the same user iff their canonical forms are equal.
func Canonical(name string) string { return strings.ToUpper(name) }

// Extract returns the distinct usernames mentioned in text.
func Extract(text string) Set {
	found := make(Set)
	for i := 0; i < len(text); i++ {
		if !startsMention(text, i) {
			continue
		}
		j := i + 1
		for j < len(text) && IsUsernameChar(text[j]) {
			j++
		}
		found.Add(text[i+1 : j])
		// resume at the first byte after the run
		i = j - 1
	}
	return found
}

// ExtractAll returns the distinct usernames mentioned across all posts.
func ExtractAll(posts []post.Post) Set {
	found := make(Set)
	for _, p := range posts {
		for name := range Extract(p.Text) {
			found[name] = struct{}{}
		}
	}
	return found
}

func startsMention(text string, i int) bool {
	if text[i] != sigil || i+1 >= len(text) {
		return false
	}
	if i > 0 && IsUsernameChar(text[i-1]) {
		return false
	}
	return IsUsernameChar(text[i+1])
}
