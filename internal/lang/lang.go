// Package lang maps file extensions to Markdown fence language tags.
package lang

import (
	"path/filepath"
	"strings"
)

// DefaultTag is the fence tag for extensions with no specific mapping.
const DefaultTag = "text"

// tags maps lowercase extensions to fence language tags.
// Closed set: a lookup table, not a plugin surface.
var tags = map[string]string{
	".toml": "toml",
	".ts":   "ts",
	".tsx":  "ts",
}

// TagFor returns the Markdown fence language tag for a file path.
// Extension matching is case-insensitive. Total function: unknown
// extensions map to DefaultTag.
func TagFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := tags[ext]; ok {
		return tag
	}
	return DefaultTag
}
