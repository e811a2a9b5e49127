// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SuffixLength is the number of random characters appended on collision
const SuffixLength = 8

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Make converts a title to a lowercase ASCII slug: diacritics are stripped,
// whitespace becomes hyphens and anything outside [a-z0-9-] is dropped.
// The result may be empty.
func Make(title string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		stripped = title
	}

	s := strings.ToLower(stripped)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a random suffix to base. An empty base yields the
// suffix alone.
func WithSuffix(base string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:SuffixLength]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
