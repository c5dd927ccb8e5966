// Package classify assigns a coarse chemical category to a compound name
// by keyword matching.
package classify

import (
	"strings"

	"github.com/vietddude/enricher/internal/core/domain"
)

// categoryRule maps one category to the name substrings that imply it.
type categoryRule struct {
	Category string
	Keywords []string
}

// rules is scanned in order; the first category with any keyword hit wins.
// The order is significant, keep it stable.
var rules = []categoryRule{
	{"Heterocyclic", []string{
		"triazole", "pyrazole", "imidazole", "thiazole", "oxazole",
		"pyridine", "quinoline", "isoquinoline", "indole", "pyrimidine",
		"piperidine", "piperazine", "morpholine", "azetidine",
	}},
	{"Aromatic", []string{"benzene", "phenyl", "toluene", "naphthalene", "aromatic", "indole"}},
	{"Aliphatic", []string{"methyl", "ethyl", "propyl", "butyl", "pentyl", "hexyl", "cycloalkyl"}},
	{"Halogenated", []string{"chloro", "fluoro", "bromo", "iodo", "halide"}},
	{"Nitrogen-Containing", []string{"amine", "amino", "urea", "azide", "azo", "nitrile", "hydrazine"}},
	{"Oxygen-Containing", []string{"alcohol", "ether", "aldehyde", "ketone", "acid", "ester", "anhydride"}},
	{"Sulfur-Containing", []string{"thiol", "thio", "sulfonamide", "thiazole", "sulfide"}},
	{"Phosphorus-Containing", []string{"phosphate", "phosphonate", "phosphine"}},
	{"Steroidal", []string{"steroid", "estradiol", "testosterone", "corticosteroid"}},
}

// Categorize returns the category for a chemical name. An empty or blank
// name, or a name matching no keyword, maps to the default category.
func Categorize(name string) string {
	if strings.TrimSpace(name) == "" {
		return domain.DefaultCategory
	}

	lowered := strings.ToLower(name)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Category
			}
		}
	}
	return domain.DefaultCategory
}

// Categories returns the fixed set of known categories in match order,
// without the default.
func Categories() []string {
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Category)
	}
	return out
}
