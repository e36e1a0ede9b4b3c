package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/followgraph/pkg/mention"
)

// maxUsernameLength bounds usernames accepted from user input.
const maxUsernameLength = 64

// ValidateUsername checks that name is a usable username: non-empty, at most
// 64 characters, and made only of letters, digits, underscores and hyphens.
// A single leading "@" is tolerated and ignored.
func ValidateUsername(name string) error {
	name = strings.TrimPrefix(name, "@")
	if name == "" {
		return New(ErrCodeInvalidUsername, "username cannot be empty")
	}
	if len(name) > maxUsernameLength {
		return New(ErrCodeInvalidUsername, "username too long (max %d characters)", maxUsernameLength)
	}
	if !mention.IsValidUsername(name) {
		return New(ErrCodeInvalidUsername, "invalid username: %q", name)
	}
	return nil
}

// ValidatePath validates a local file path supplied on the command line or in
// configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
