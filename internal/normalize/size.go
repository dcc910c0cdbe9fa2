package normalize

import (
	"regexp"
	"strings"
)

var sizePattern = regexp.MustCompile(`(?i)\d+\s?(ml|g|kg)\b`)

// SizeInfo recovers a package volume/weight annotation. Tags are preferred
// (the shop labels sizes there), falling back to a pattern search over the
// long-form description. Absence yields "", which serializes as no field.
func SizeInfo(tags []string, description string) string {
	for _, tag := range tags {
		if strings.Contains(tag, "ml") || strings.Contains(tag, "g ") || strings.Contains(tag, "kg") {
			if m := sizePattern.FindString(tag); m != "" {
				return m
			}
			return strings.TrimSpace(tag)
		}
	}
	return sizePattern.FindString(description)
}
