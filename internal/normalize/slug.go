package normalize

import (
	"regexp"
	"strings"
)

var (
	trademarkGlyphs = strings.NewReplacer("®", "", "™", "", "©", "")
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
)

// Slug derives the URL-safe identifier used as the product's file name and
// storage key. It is pure and total: any input maps to a lowercase
// `[a-z0-9-]` string with no leading, trailing, or doubled hyphens. A name
// with no usable characters yields "", which callers must treat as a
// rejection, never as a file name.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = trademarkGlyphs.Replace(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
