package domain

// Checkpoint records pipeline progress as the next unprocessed position,
// expressed as a completion count from the start of the catalogue. It is
// the sole piece of durable pipeline state.
type Checkpoint struct {
	LastRow int `json:"last_row"`
}
