package normalize

import (
	"regexp"
	"strings"
)

const (
	softLimit     = 200
	minCleanChars = 50
)

// sentenceEnders are acceptable cut points when the cleaned description runs
// past the soft limit.
var sentenceEnders = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, ':': {}, ';': {},
}

var (
	lineComments  = regexp.MustCompile(`(?m)//.*$`)
	scriptCalls   = regexp.MustCompile(`\b[a-zA-Z_$][\w$]*\([^()]*\)`)
	eventHandlers = regexp.MustCompile(`(?i)\bon\w+\s*=\s*\S+`)
	inlineMarkup  = regexp.MustCompile(`<[^>]*>`)
	labelPrefix   = regexp.MustCompile(`(?i)^\s*descripci[oó]n\s*:?\s*`)
)

// FallbackDescription is the templated default used when no usable long-form
// text survives cleaning.
func FallbackDescription(name string) string {
	return name + " de EverGreen Life. Producto de alta calidad."
}

// CleanDescription turns the raw long-form description into a short,
// front-matter-safe lead paragraph. Every step has a fallback; the result is
// never empty for a non-empty product name.
func CleanDescription(raw, name string) string {
	text := stripMarkup(raw)

	if text != "" {
		text = dropTrailingSections(text)
	}
	if len([]rune(text)) < minCleanChars {
		text = FallbackDescription(name)
	}
	text = truncate(text)
	return yamlSafe(text)
}

func stripMarkup(raw string) string {
	text := lineComments.ReplaceAllString(raw, "")
	text = eventHandlers.ReplaceAllString(text, "")
	text = scriptCalls.ReplaceAllString(text, "")
	text = inlineMarkup.ReplaceAllString(text, "")
	text = labelPrefix.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// dropTrailingSections cuts the text at the earliest section header that
// appears strictly after the soft limit, so trailing "objetivos" or
// ingredient blocks never bloat the lead paragraph. Headers inside the first
// 200 characters are left alone; the lead-in is never truncated mid-flow.
func dropTrailingSections(text string) string {
	runes := []rune(text)
	if len(runes) <= softLimit {
		return text
	}
	lower := strings.ToLower(string(runes))
	cut := -1
	for _, header := range sectionMarkers {
		idx := runeIndex(lower, header)
		if idx > softLimit && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut == -1 {
		return text
	}
	return strings.TrimSpace(string(runes[:cut]))
}

// truncate enforces the ~200 char ceiling: prefer a sentence boundary between
// 150 and 250, then a word boundary between 180 and 220, then a hard cut.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= softLimit {
		return text
	}

	end := min(250, len(runes)-1)
	for i := 150; i <= end; i++ {
		if _, ok := sentenceEnders[runes[i]]; ok {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}

	spaceEnd := min(220, len(runes)-1)
	for i := 180; i <= spaceEnd; i++ {
		if runes[i] == ' ' {
			return strings.TrimSpace(string(runes[:i])) + "..."
		}
	}

	return strings.TrimSpace(string(runes[:softLimit])) + "..."
}

// yamlSafe makes the text a safe double-quoted YAML scalar: escaped quotes,
// no line breaks, single spaces, printable Latin only.
func yamlSafe(text string) string {
	text = strings.ReplaceAll(text, `"`, `\"`)
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case r == ' ' || (r >= 0x21 && r <= 0x7E) || (r >= 0xA1 && r <= 0xFF):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

func runeIndex(s, substr string) int {
	byteIdx := strings.Index(s, substr)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}
