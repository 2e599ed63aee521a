package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportRecord represents the structure of an archived report in the database.
type ReportRecord struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Report    json.RawMessage `json:"report"` // JSONB
	CreatedAt time.Time       `json:"created_at"`
}

// ReportSummary is the row shape returned when listing archived reports.
type ReportSummary struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
