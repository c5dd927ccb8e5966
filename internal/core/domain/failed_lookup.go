package domain

import "time"

// FailedLookup represents an identifier whose external lookup exhausted
// its retry budget. The pipeline still emits a record for it; the entry
// exists so operators can re-run the failures later.
type FailedLookup struct {
	ID       string    `json:"id"        db:"id"`
	CAS      string    `json:"cas"       db:"cas"`
	Source   string    `json:"source"    db:"source"`
	Attempts int       `json:"attempts"  db:"attempts"`
	Reason   string    `json:"reason"    db:"reason"`
	FailedAt time.Time `json:"failed_at" db:"failed_at"`
}

// Lookup source names used in failure entries and metrics labels.
const (
	SourcePubChem = "pubchem"
	SourceVendor  = "vendor"
)
