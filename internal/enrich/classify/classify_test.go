package classify

import (
	"testing"

	"github.com/vietddude/enricher/internal/core/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heterocyclic", "1,2,4-Triazole derivative", "Heterocyclic"},
		{"aromatic", "Phenylacetic compound", "Aromatic"},
		{"aliphatic", "n-Butyl carbamate", "Aliphatic"},
		{"halogenated", "4-Chlorobenzonitrile precursor", "Halogenated"},
		{"nitrogen", "Hydrazine hydrate", "Nitrogen-Containing"},
		{"oxygen", "Acetic acid", "Oxygen-Containing"},
		{"sulfur", "Thiol reagent", "Sulfur-Containing"},
		{"phosphorus", "Diphosphate salt", "Phosphorus-Containing"},
		{"steroidal", "Estradiol benzoate", "Steroidal"},
		{"no match", "Water", domain.DefaultCategory},
		{"empty", "", domain.DefaultCategory},
		{"blank", "   ", domain.DefaultCategory},
		{"case insensitive", "PYRIDINE HYDROCHLORIDE", "Heterocyclic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.input)
			if got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Names matching several rules must resolve to the first category in
// table order, deterministically.
func TestCategorize_FirstCategoryWins(t *testing.T) {
	// "indole" is both Heterocyclic and Aromatic; Heterocyclic comes first.
	if got := Categorize("5-Methylindole"); got != "Heterocyclic" {
		t.Errorf("Expected Heterocyclic for overlapping keywords, got %q", got)
	}

	// "chlorobenzene" hits Aromatic (benzene) before Halogenated (chloro).
	if got := Categorize("Chlorobenzene"); got != "Aromatic" {
		t.Errorf("Expected Aromatic ordering precedence, got %q", got)
	}

	for i := 0; i < 100; i++ {
		if got := Categorize("5-Methylindole"); got != "Heterocyclic" {
			t.Fatalf("Non-deterministic result on iteration %d: %q", i, got)
		}
	}
}

func TestCategorize_TotalOverKnownSet(t *testing.T) {
	known := map[string]bool{domain.DefaultCategory: true}
	for _, c := range Categories() {
		known[c] = true
	}

	inputs := []string{"", "   ", "Aspirin", "benzene", "thiol compound", "??", "12345"}
	for _, in := range inputs {
		if got := Categorize(in); !known[got] {
			t.Errorf("Categorize(%q) returned unknown category %q", in, got)
		}
	}
}
