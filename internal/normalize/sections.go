package normalize

import (
	"strings"
)

// sectionMarkers are the header phrases the shop embeds inline in its
// long-form descriptions, including the social-share boilerplate that
// trails every page.
var sectionMarkers = []string{
	"objetivos",
	"métodos de uso",
	"ingredientes",
	"compartir",
}

// Sections the projection renders as their own headings.
const (
	SectionObjectives = "objetivos"
	SectionUsage      = "métodos de uso"
)

// A cleaned section shorter than this is treated as not present; the markers
// also appear in menus and breadcrumbs with no real body behind them.
const minSectionChars = 10

// Section extracts the named section from the raw description: the text from
// just after the marker's first occurrence up to the next known marker or end
// of string, stripped of markup. The boolean reports whether the section was
// found with a usable body.
func Section(raw, name string) (string, bool) {
	if raw == "" || name == "" {
		return "", false
	}
	lower := strings.ToLower(raw)
	marker := strings.ToLower(name)

	start := strings.Index(lower, marker)
	if start < 0 {
		return "", false
	}
	start += len(marker)

	end := len(raw)
	for _, other := range sectionMarkers {
		if other == marker {
			continue
		}
		if idx := strings.Index(lower[start:], other); idx >= 0 && start+idx < end {
			end = start + idx
		}
	}

	text := stripMarkup(raw[start:end])
	if len([]rune(text)) < minSectionChars {
		return "", false
	}
	return text, true
}

// ExtractSections gathers every renderable section that is present.
func ExtractSections(raw string) map[string]string {
	out := make(map[string]string)
	for _, name := range []string{SectionObjectives, SectionUsage} {
		if text, ok := Section(raw, name); ok {
			out[name] = text
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
