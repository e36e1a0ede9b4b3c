// Package io reads and writes post collections as JSON or TOML.
//
// # JSON Format
//
// A JSON file is either a bare array of posts or an object with a "posts"
// array:
//
//	[
//	  {"id": 1, "author": "alyssa", "text": "@bitdiddle rivest talk in 30 minutes", "timestamp": "2016-02-17T10:00:00Z"},
//	  {"id": 2, "author": "bitdiddle", "text": "see you there @alyssa", "timestamp": "2016-02-17T10:05:00Z"}
//	]
//
// Timestamps are RFC 3339.
//
// # TOML Format
//
// A TOML file holds an array of tables named "posts". Timestamps use TOML's
// native offset date-time:
//
//	[[posts]]
//	id = 1
//	author = "alyssa"
//	text = "@bitdiddle rivest talk in 30 minutes"
//	timestamp = 2016-02-17T10:00:00Z
//
// # Validation
//
// Every post needs a non-empty author and a timestamp, and ids must be unique
// within one file. Violations are reported as [errors.ErrCodeInvalidInput]
// naming the offending index. Unknown fields are rejected in both formats so
// typos do not silently drop data.
//
// # Import and Export
//
// [ImportPosts] picks the decoder from the file extension; [ReadPosts] takes
// the format explicitly for readers such as stdin. [WritePosts] and
// [ExportPosts] are the inverse and always produce the object form.
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/followgraph/pkg/errors
package io
