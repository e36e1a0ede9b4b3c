// Package mention extracts @-mentions of usernames from free-form text.
//
// # Usernames
//
// A username is a non-empty run of ASCII letters, digits, underscores and
// hyphens. Usernames are case-insensitive; [Canonical] maps every spelling to
// one uppercase form, and every set or map key produced by this module goes
// through it.
//
// # Boundary Rules
//
// An "@" starts a mention when both hold:
//
//   - it is the first byte of the text, or the byte before it is not a
//     username character
//   - the byte after it is a username character
//
// The mention body is the maximal run of username characters after the "@".
// Scanning resumes after that run, so each following "@" is judged against the
// updated cursor:
//
//	mention.Extract("@@name")            // {NAME}
//	mention.Extract("bitdiddle@mit.edu") // {} (preceded by a username character)
//	mention.Extract("trailing @")        // {} (nothing follows the sigil)
//
// Bytes outside ASCII are never username characters, so multi-byte UTF-8
// sequences act as boundaries.
//
// # Complexity
//
// [Extract] is a single left-to-right pass, O(len(text)).
package mention
