package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxCleanTags bounds the curated tag set on a normalized product.
	MaxCleanTags = 5
	// maxBenefitTags bounds tags mined from the long-form description.
	maxBenefitTags = 3
)

var titleCaser = cases.Title(language.Spanish)

// goodTerms is the benefit/ingredient vocabulary that always qualifies a tag,
// regardless of shape.
var goodTerms = []string{
	"energía", "vitalidad", "bienestar", "antioxidante", "natural",
	"vitaminas", "minerales", "suplemento", "salud", "nutrición",
	"inmunológico", "digestivo", "colágeno", "antiedad", "hidratante",
	"drenante", "detox", "metabolismo", "proteína", "aminoácidos",
	"premium", "serum", "cosmético", "anticelulítico", "quema grasas",
	"olivo",
}

// unwantedTerms reject UI chrome, units, and script remnants that leak into
// raw tag lists.
var unwantedTerms = []string{
	"€", "img", "ml", "package", "search", "lenguaje", "cantidad",
	"inscríbase", "boletín", "newsletter", "clipboard", "compartir",
	"añadir", "comprar", "método", "ingrediente",
	"function", "javascript", "onclick", "gtag", "cookie",
}

// plausibleExclusions disqualify a tag from the standalone-label shape test.
var plausibleExclusions = []string{":", "(", "€", "ml"}

// CurateTags filters, deduplicates, and caps the raw tag list. A tag
// survives when it carries a known benefit/ingredient term, or when it looks
// like a plausible standalone label.
func CurateTags(raw []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || isUnwanted(tag) {
			continue
		}
		if !isGoodTerm(tag) && !isPlausibleLabel(tag) {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxCleanTags {
			break
		}
	}
	return out
}

// BenefitTags scans the long-form description for the benefit vocabulary and
// emits each hit as a capitalized tag.
func BenefitTags(description string) []string {
	if description == "" {
		return nil
	}
	lower := strings.ToLower(description)
	var tags []string
	for _, keyword := range benefitVocabulary {
		if strings.Contains(lower, keyword) {
			tags = append(tags, titleCaser.String(keyword))
			if len(tags) == maxBenefitTags {
				break
			}
		}
	}
	return tags
}

// MergeTags unions curated tags with benefit tags, curated entries first,
// deduplicating case-insensitively and keeping the overall cap.
func MergeTags(curated, benefits []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, tag := range append(append([]string{}, curated...), benefits...) {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxCleanTags {
			break
		}
	}
	return out
}

// benefitVocabulary is the subset of goodTerms scanned against descriptions;
// multi-word marketing labels are left out on purpose.
var benefitVocabulary = []string{
	"energía", "vitalidad", "bienestar", "antioxidante", "natural",
	"vitaminas", "minerales", "suplemento", "salud", "nutrición",
	"inmunológico", "digestivo", "colágeno", "antiedad", "hidratante",
	"drenante", "detox", "metabolismo", "proteína", "aminoácidos",
}

func isUnwanted(tag string) bool {
	lower := strings.ToLower(tag)
	for _, term := range unwantedTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func isGoodTerm(tag string) bool {
	lower := strings.ToLower(tag)
	for _, term := range goodTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func isPlausibleLabel(tag string) bool {
	n := utf8.RuneCountInString(tag)
	if n <= 3 || n >= 30 {
		return false
	}
	for _, bad := range plausibleExclusions {
		if strings.Contains(tag, bad) {
			return false
		}
	}
	return true
}
