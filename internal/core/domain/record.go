package domain

import "fmt"

// CatalogEntry is one row of the input catalogue after cleanup.
type CatalogEntry struct {
	CAS  string `json:"cas"`
	Name string `json:"name"`
}

// SourceRecord is the partial result of a single external lookup.
// All fields are optional; an absent value is the empty string.
type SourceRecord struct {
	Name       string `json:"name"`
	Formula    string `json:"formula"`
	Weight     string `json:"weight"`
	Appearance string `json:"appearance"`
}

// Record is one fully assembled output row.
type Record struct {
	ProductCode  string `json:"product_code"`
	Name         string `json:"name"`
	CAS          string `json:"cas"`
	Synonyms     string `json:"synonyms"`
	Formula      string `json:"formula"`
	Weight       string `json:"weight"`
	Appearance   string `json:"appearance"`
	Storage      string `json:"storage"`
	Shipping     string `json:"shipping"`
	Applications string `json:"applications"`
	Category     string `json:"category"`
}

// Fixed defaults applied to every assembled record.
const (
	DefaultStorage      = "2-8°C Refrigerator"
	DefaultShipping     = "Ambient"
	DefaultCategory     = "Impurity"
	DefaultApplications = "Used in chemical synthesis, pharmaceutical or industrial research."
)

// ProductCode derives the unique product code for a 0-indexed catalogue
// position. Codes are 1-indexed and zero-padded: S1-0001, S1-0002, ...
func ProductCode(pos int) string {
	return fmt.Sprintf("S1-%04d", pos+1)
}
