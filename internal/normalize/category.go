package normalize

import "strings"

// categoryRules are checked in order against the lowercased name; the first
// matching substring wins. Names can contain several triggers ("OLIFE
// COLLAGEN KIT"), so the ordering is part of the contract.
var categoryRules = []struct {
	Substr string
	Label  string
}{
	{"kit", "Kits"},
	{"collagen", "Colágeno"},
	{"protein", "Proteínas"},
	{"brucia grassi", "Quema Grasas"},
	{"crema", "Cremas"},
	{"siero", "Serums"},
	{"bende", "Tratamientos"},
	{"golden day", "Suplementos Premium"},
	{"olife", "Suplementos OLife"},
}

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "Suplementos"

func Category(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.Substr) {
			return rule.Label
		}
	}
	return DefaultCategory
}
