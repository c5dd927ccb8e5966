// Package catalog reads the input compound catalogue and writes the
// enriched output spreadsheet.
package catalog

import (
	"github.com/vietddude/enricher/internal/core/domain"
)

// Input header names required in the catalogue.
const (
	ColCAS  = "CAS No"
	ColName = "Chemical Name"
)

// OutputHeader is the fixed column order of the output artifact.
var OutputHeader = []string{
	"Product Code",
	"Chemical Name",
	"CAS No",
	"Synonyms",
	"Molecular Formula",
	"Molecular Weight",
	"Appearance",
	"Storage",
	"Shipping Conditions",
	"Applications",
	"Category",
}

// Catalog is the tabular I/O collaborator of the pipeline.
type Catalog interface {
	// ReadInput loads catalogue entries. Rows with a blank CAS are
	// dropped; values are trimmed. A missing CAS column is fatal.
	ReadInput(path string) ([]domain.CatalogEntry, error)

	// ReadOutput loads rows from a prior output artifact. A missing
	// file yields no rows and no error.
	ReadOutput(path string) ([]domain.Record, error)

	// WriteOutput rewrites the output artifact in full.
	WriteOutput(path string, records []domain.Record) error
}
