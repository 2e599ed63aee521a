package models

import (
	"time"

	"github.com/google/uuid"
)

// AudioInfo describes the resolved audio of a run.
type AudioInfo struct {
	Source      string   `json:"source"`
	Filename    string   `json:"filename"`
	ContentType string   `json:"content_type"`
	SizeBytes   int      `json:"size_bytes"`
	Duration    *float64 `json:"duration,omitempty"`
}

// Report is the complete output of one analysis run.
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Audio       AudioInfo  `json:"audio"`
	Transcript  Transcript `json:"transcript"`
	Metrics     Metrics    `json:"metrics"`
	Insights    Insights   `json:"insights"`
	Warnings    []string   `json:"warnings,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt time.Time  `json:"completed_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}
