package models

import (
	"sort"
	"strings"
)

// Transcript is the time-coded output of one transcription call.
type Transcript struct {
	Text     string              `json:"text"`
	Language string              `json:"language,omitempty"`
	Segments []TranscriptSegment `json:"segments"`
}

// TranscriptSegment represents a single segment of a transcription.
type TranscriptSegment struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   *string `json:"speaker,omitempty"`
}

// Duration is the length of the segment in seconds.
func (s TranscriptSegment) Duration() float64 {
	if s.EndTime <= s.StartTime {
		return 0
	}
	return s.EndTime - s.StartTime
}

// IsEmpty reports whether the transcript carries neither text nor segments.
func (t *Transcript) IsEmpty() bool {
	return t == nil || (strings.TrimSpace(t.Text) == "" && len(t.Segments) == 0)
}

// FullText returns the transcript text, falling back to the joined segment
// texts when the provider returned segments only.
func (t *Transcript) FullText() string {
	if t == nil {
		return ""
	}
	if strings.TrimSpace(t.Text) != "" {
		return t.Text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Normalize orders segments by start time and clips them so that timestamps
// are non-decreasing and segments never overlap. Negative times become zero.
func (t *Transcript) Normalize() {
	if t == nil || len(t.Segments) == 0 {
		return
	}
	sort.SliceStable(t.Segments, func(i, j int) bool {
		return t.Segments[i].StartTime < t.Segments[j].StartTime
	})
	prevEnd := 0.0
	for i := range t.Segments {
		seg := &t.Segments[i]
		seg.Text = strings.TrimSpace(seg.Text)
		if seg.StartTime < prevEnd {
			seg.StartTime = prevEnd
		}
		if seg.EndTime < seg.StartTime {
			seg.EndTime = seg.StartTime
		}
		prevEnd = seg.EndTime
	}
}

// SegmentsOrdered reports whether the segments are non-decreasing and
// non-overlapping.
func (t *Transcript) SegmentsOrdered() bool {
	if t == nil {
		return true
	}
	prevEnd := 0.0
	for _, seg := range t.Segments {
		if seg.StartTime < prevEnd || seg.EndTime < seg.StartTime {
			return false
		}
		prevEnd = seg.EndTime
	}
	return true
}
