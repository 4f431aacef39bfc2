package entity

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a stored contact record for data transfer between layers.
type Card struct {
	ID uuid.UUID `json:"id"`
	ContactRecord
	SourcePath string    `json:"source_path,omitempty"`
	SourceHash string    `json:"source_hash,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
