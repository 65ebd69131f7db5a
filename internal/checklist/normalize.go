// Package checklist matches uploaded file names against a fixed list of
// required documents and reports completion progress.
package checklist

import (
	"regexp"
	"strings"
)

var (
	extensionPattern = regexp.MustCompile(`(?i)\.[a-z0-9]+$`)
	separatorPattern = regexp.MustCompile(`[_\-]+`)
	// ASCII word characters, whitespace and Hangul syllables survive.
	disallowedPattern = regexp.MustCompile(`[^0-9A-Za-z_\s\x{AC00}-\x{D7A3}]`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a document label or file name so that names
// differing only in extension, case, punctuation or spacing compare equal.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(raw)
	s = extensionPattern.ReplaceAllString(s, "")
	s = separatorPattern.ReplaceAllString(s, " ")
	s = disallowedPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
