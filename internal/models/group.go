package models

// Group represents a training group. The identifier is a single
// letter, stored uppercase.
type Group struct {
	ID      string `json:"id" db:"id"`
	Trainer string `json:"trainer" db:"trainer"`
}

// DefaultImportedTrainer is assigned to groups auto-created by the
// import pipeline when a row references an unknown group letter.
const DefaultImportedTrainer = "Unknown (Imported)"
